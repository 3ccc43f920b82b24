package commands

import (
	"context"
	"net"
	"time"

	"github.com/rqa-security/guardhouse/config"
	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/datastore/postgres"
	"github.com/rqa-security/guardhouse/pkg/logger"
)

// Store is the datastore the commands run against.
type Store interface {
	datastore.Store
	// Bootstrap applies the schema.
	Bootstrap(ctx context.Context) error
	// Seed fills the lookup tables.
	Seed(ctx context.Context) error
	Close() error
}

var _ Store = &postgres.DataStore{}

// ConfigLoaderFunc loads the configuration from a file path.
type ConfigLoaderFunc func(path string) (*config.Config, error)

// StoreOpenerFunc connects to the datastore.
type StoreOpenerFunc func(ctx context.Context, cfg config.DatabaseConfig, lggr logger.Logger) (Store, error)

// ListenFunc opens the listener of the HTTP server.
type ListenFunc func(network, address string) (net.Listener, error)

// defaultStoreOpener is the production implementation that connects to Postgres.
func defaultStoreOpener(ctx context.Context, cfg config.DatabaseConfig, lggr logger.Logger) (Store, error) {
	return postgres.Open(ctx, cfg, lggr)
}

// Deps holds the injectable dependencies of the commands.
// All fields are optional; nil values use the production defaults.
type Deps struct {
	// ConfigLoader loads the configuration.
	// Default: config.Load
	ConfigLoader ConfigLoaderFunc

	// StoreOpener connects to the datastore.
	// Default: postgres.Open
	StoreOpener StoreOpenerFunc

	// Listen opens the listener of the serve command.
	// Default: net.Listen
	Listen ListenFunc

	// Now is the clock of the payroll commands.
	// Default: time.Now
	Now func() time.Time
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ConfigLoader == nil {
		d.ConfigLoader = config.Load
	}
	if d.StoreOpener == nil {
		d.StoreOpener = defaultStoreOpener
	}
	if d.Listen == nil {
		d.Listen = net.Listen
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}
