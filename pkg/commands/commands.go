// Package commands implements the guardhouse command line.
//
//	root := commands.NewRootCommand(commands.Config{})
//	if err := root.ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
//
// Tests inject a logger and fakes through Config:
//
//	root := commands.NewRootCommand(commands.Config{
//	    Logger: logger.Test(t),
//	    Deps:   commands.Deps{StoreOpener: openFake},
//	})
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rqa-security/guardhouse/config"
	"github.com/rqa-security/guardhouse/pkg/commands/text"
	"github.com/rqa-security/guardhouse/pkg/logger"
)

// DefaultConfigPath is the configuration file read when --config is not given.
const DefaultConfigPath = "guardhouse.yaml"

var (
	rootShort = "Security agency administration backend"

	rootLong = text.LongDesc(`
		guardhouse serves the REST API behind the agency dashboard: personnel, clients,
		contracts, assignments and payroll, stored in Postgres.

		Configuration is read from the file given by --config (YAML or .env) and from
		GUARDHOUSE_* environment variables, which take precedence.
	`)
)

// Config holds the configuration of the command line.
type Config struct {
	// Logger replaces the logger built from the loaded configuration. Optional.
	Logger logger.Logger

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// app is the state shared by the commands once the root command has loaded the
// configuration.
type app struct {
	cfg      Config
	settings *config.Config
	lggr     logger.Logger
}

// NewRootCommand creates the guardhouse command with all subcommands.
func NewRootCommand(cfg Config) *cobra.Command {
	cfg.deps()
	a := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:           "guardhouse",
		Short:         rootShort,
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", DefaultConfigPath, "Path to the YAML or .env configuration file")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error), overrides log.level")

	cmd.AddCommand(a.newServeCmd())
	cmd.AddCommand(a.newDBCmd())
	cmd.AddCommand(a.newUsersCmd())
	cmd.AddCommand(a.newPayrollCmd())

	return cmd
}

// load reads the configuration and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	settings, err := a.cfg.Deps.ConfigLoader(path)
	if err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		settings.Log.Level = level
	}
	if err = settings.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.settings = settings

	if a.cfg.Logger != nil {
		a.lggr = a.cfg.Logger.Named("cli")
		return nil
	}
	lc, err := logger.ParseConfig(settings.Log.Level)
	if err != nil {
		return err
	}
	lggr, err := lc.New()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.lggr = lggr.Named("cli")

	return nil
}

// withStore connects to the datastore, runs fn and closes the connection.
func (a *app) withStore(cmd *cobra.Command, fn func(Store) error) (err error) {
	store, err := a.cfg.Deps.StoreOpener(cmd.Context(), a.settings.Database, a.lggr)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	return fn(store)
}
