package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todo-api/internal/config"
	"todo-api/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	version    string
	configFile string
	config     *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(version string) *RootCommand {
	root := &RootCommand{version: version}

	root.cmd = &cobra.Command{
		Use:   "todos",
		Short: "A small JSON to-do list service",
		Long: `todos serves a to-do list over HTTP.

ENDPOINTS:
  GET    /todos[?completed=true|false]     List to-do items
  POST   /todos                            Create {"task": "...", "priority": "..."}
  PUT    /todos/complete-all               Mark every item completed
  GET    /todos/{id}                       Fetch one item
  PUT    /todos/{id}                       Update task, completed or priority
  DELETE /todos/{id}                       Delete one item

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file (--config, TODOS_CONFIG) > defaults

    TODOS_ADDR                             Listen address (default: :3000)
    TODOS_STORAGE_BACKEND                  memory, sqlite or postgres (default: memory)
    TODOS_SQLITE_PATH                      SQLite database file (default: todos.db)
    TODOS_POSTGRES_DSN                     PostgreSQL connection string
    TODOS_DB_QUERY_TIMEOUT                 Per-query timeout (default: 5s)
    TODOS_SEED                             Seed the memory store (default: true)
    TODOS_VALIDATION_TASK_MAX              Max task length (default: 255)
    TODOS_DEFAULT_PRIORITY                 Priority for new items (default: medium)
    TODOS_LOG_LEVEL                        debug, info, warn, error (default: info)
    TODOS_LOG_FORMAT                       text, json, logfmt (default: text)
    TODOS_DEBUG                            Print store-level debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.loadConfig()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Config returns the configuration loaded by the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "TOML configuration file (overrides TODOS_CONFIG)")

	// Server configuration
	flags.String("addr", "", "Listen address (overrides TODOS_ADDR)")
	flags.Duration("shutdown-timeout", 0, "Graceful shutdown timeout (overrides TODOS_SHUTDOWN_TIMEOUT)")

	// Storage configuration
	flags.String("storage", "", "Storage backend: memory, sqlite or postgres (overrides TODOS_STORAGE_BACKEND)")
	flags.String("sqlite-path", "", "SQLite database file (overrides TODOS_SQLITE_PATH)")
	flags.String("postgres-dsn", "", "PostgreSQL connection string (overrides TODOS_POSTGRES_DSN)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TODOS_DB_QUERY_TIMEOUT)")
	flags.Bool("seed", true, "Seed the memory store with sample items (overrides TODOS_SEED)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TODOS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TODOS_LOG_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  "Serve the to-do API until interrupted. SIGINT or SIGTERM trigger a graceful shutdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := logging.New(cmd.ErrOrStderr(), r.config.Logging.Level, r.config.Logging.Format)

			app, err := NewApp(ctx, r.config, logger)
			if err != nil {
				return err
			}
			return app.Serve(ctx)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "todos %s\n", r.version)
			return err
		},
	}

	r.cmd.AddCommand(serveCmd, versionCmd)
}

// loadConfig runs the configuration cascade and applies flag overrides
func (r *RootCommand) loadConfig() error {
	cfg, err := config.NewLoader().
		WithConfigFile(r.configFile).
		LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	return nil
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		overrides.Addr = &v
	}
	if flags.Changed("shutdown-timeout") {
		v, _ := flags.GetDuration("shutdown-timeout")
		overrides.ShutdownTimeout = &v
	}
	if flags.Changed("storage") {
		v, _ := flags.GetString("storage")
		overrides.Backend = &v
	}
	if flags.Changed("sqlite-path") {
		v, _ := flags.GetString("sqlite-path")
		overrides.SQLitePath = &v
	}
	if flags.Changed("postgres-dsn") {
		v, _ := flags.GetString("postgres-dsn")
		overrides.PostgresDSN = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.QueryTimeout = &v
	}
	if flags.Changed("seed") {
		v, _ := flags.GetBool("seed")
		overrides.Seed = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}

	return overrides
}
