package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"
)

// SchemaVersion is the version of the table layout written by this build.
// A database is usable when its stored version has the same major
// version and is not newer.
const SchemaVersion = "v1.0.0"

const schemaVersionKey = "schema_version"

// IncompatibleSchemaError indicates a database written by an incompatible build.
type IncompatibleSchemaError struct {
	Stored  string
	Current string
}

func (e *IncompatibleSchemaError) Error() string {
	return fmt.Sprintf("database schema %s is not compatible with %s", e.Stored, e.Current)
}

// checkSchemaVersion records SchemaVersion on first use, upgrades an older
// compatible version in place and rejects anything else.
func checkSchemaVersion(ctx context.Context, db *sql.DB) (string, error) {
	return reconcileSchemaVersion(ctx, db, SchemaVersion)
}

func reconcileSchemaVersion(ctx context.Context, db *sql.DB, current string) (string, error) {
	stored, err := readMeta(ctx, db, schemaVersionKey)
	if errors.Is(err, sql.ErrNoRows) {
		return current, writeMeta(ctx, db, schemaVersionKey, current)
	}
	if err != nil {
		return "", fmt.Errorf("read schema version: %w", err)
	}

	if !semver.IsValid(stored) || semver.Major(stored) != semver.Major(current) ||
		semver.Compare(stored, current) > 0 {
		return "", &IncompatibleSchemaError{Stored: stored, Current: current}
	}
	if semver.Compare(stored, current) < 0 {
		if err := writeMeta(ctx, db, schemaVersionKey, current); err != nil {
			return "", err
		}
	}
	return current, nil
}

func readMeta(ctx context.Context, db *sql.DB, key string) (string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(metaTable.Name)).
		Where(entsql.EQ("name", key)).
		Query()
	var value string
	if err := db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

func writeMeta(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO store_meta (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}
