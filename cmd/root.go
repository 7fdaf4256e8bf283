package cmd

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/talentloop/internal/config"
	"github.com/abhisek/talentloop/internal/lifecycle"
	"github.com/abhisek/talentloop/internal/logging"
	"github.com/abhisek/talentloop/internal/notify"
	"github.com/abhisek/talentloop/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "talentloop",
	Short: "Track job applications and mentorships through their lifecycle",
	Long: "talentloop records job applications and mentorship requests, enforces their\n" +
		"state machines, keeps an append-only audit trail and scores each match.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns a user-facing error.
func Execute() error {
	return explain(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TALENTLOOP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (default $XDG_CONFIG_HOME/talentloop/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(transitionCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from file and environment, then
// applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (--db flag, config
// file or TALENTLOOP_DB), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// env bundles the collaborators a command needs.
type env struct {
	cfg    config.Config
	log    zerolog.Logger
	store  *store.Store
	redis  *redis.Client
	engine *lifecycle.Engine
}

// openEnv opens the store and wires the engine with every configured
// event sink. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	rt := &env{cfg: cfg, log: log, store: s}

	sinks := notify.Fanout{notify.NewLogSink(log)}
	if cfg.EventLog {
		sinks = append(sinks, s.EventLog())
	}
	if cfg.Redis.Enabled() {
		rt.redis = notify.NewRedisClient(cfg.Redis)
		sinks = append(sinks, notify.NewRedisSink(rt.redis, cfg.Redis.Channel))
	}

	rt.engine = lifecycle.NewEngine(s.RecordRepo(),
		lifecycle.WithSink(sinks),
		lifecycle.WithLogger(log),
	)
	return rt, nil
}

func (rt *env) Close() error {
	var errs []error
	if rt.redis != nil {
		errs = append(errs, rt.redis.Close())
	}
	errs = append(errs, rt.store.Close())
	return errors.Join(errs...)
}
