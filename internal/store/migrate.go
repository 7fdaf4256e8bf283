package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions in the shape ent's migrate package uses.
var (
	recordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "subject_ref", Type: field.TypeString},
		{Name: "counterparty_ref", Type: field.TypeString},
		{Name: "state", Type: field.TypeString},
		{Name: "score_overall", Type: field.TypeInt, Default: 0},
		{Name: "score_dimensions", Type: field.TypeJSON, Nullable: true},
		{Name: "score_computed_at", Type: field.TypeTime, Nullable: true},
		{Name: "version", Type: field.TypeInt64},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	recordsTable = &schema.Table{
		Name:       "lifecycle_records",
		Columns:    recordsColumns,
		PrimaryKey: []*schema.Column{recordsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lifecycle_records_kind_state", Columns: []*schema.Column{recordsColumns[1], recordsColumns[4]}},
			{Name: "lifecycle_records_updated_at", Columns: []*schema.Column{recordsColumns[10]}},
		},
	}

	auditColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "record_id", Type: field.TypeString},
		{Name: "seq", Type: field.TypeInt},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "actor", Type: field.TypeString},
		{Name: "from_state", Type: field.TypeString},
		{Name: "to_state", Type: field.TypeString},
		{Name: "note", Type: field.TypeString, Default: ""},
	}
	auditTable = &schema.Table{
		Name:       "audit_entries",
		Columns:    auditColumns,
		PrimaryKey: []*schema.Column{auditColumns[0]},
		Indexes: []*schema.Index{
			// One row per trail position: a second writer can never
			// overwrite or interleave an entry.
			{Name: "audit_entries_record_seq", Unique: true, Columns: []*schema.Column{auditColumns[2], auditColumns[3]}},
		},
	}

	eventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "type", Type: field.TypeString},
		{Name: "record_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "from_state", Type: field.TypeString, Nullable: true},
		{Name: "to_state", Type: field.TypeString, Nullable: true},
		{Name: "actor", Type: field.TypeString, Nullable: true},
		{Name: "score_overall", Type: field.TypeInt, Nullable: true},
	}
	eventsTable = &schema.Table{
		Name:       "lifecycle_events",
		Columns:    eventsColumns,
		PrimaryKey: []*schema.Column{eventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lifecycle_events_record_id", Columns: []*schema.Column{eventsColumns[4]}},
			{Name: "lifecycle_events_timestamp", Columns: []*schema.Column{eventsColumns[2]}},
		},
	}

	metaColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
	}
	metaTable = &schema.Table{
		Name:       "store_meta",
		Columns:    metaColumns,
		PrimaryKey: []*schema.Column{metaColumns[0]},
	}

	tables = []*schema.Table{recordsTable, auditTable, eventsTable, metaTable}
)

// migrate creates or upgrades all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
