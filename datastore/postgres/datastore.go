// Package postgres implements the guardhouse datastore on Postgres through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/rqa-security/guardhouse/config"
	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/internal/retry"
	"github.com/rqa-security/guardhouse/pkg/logger"
)

var _ datastore.Store = &DataStore{}

// DataStore is the Postgres backed datastore.Store. The zero value is not usable, use
// New or Open.
type DataStore struct {
	db   *dbController
	lggr logger.Logger
}

// New wraps an open database handle.
func New(db *sql.DB, lggr logger.Logger) *DataStore {
	lggr = lggr.Named("datastore")

	return &DataStore{
		db:   newDbController(db, lggr),
		lggr: lggr,
	}
}

// Open connects to the database described by cfg, retrying the initial ping with
// backoff until it succeeds or the configured attempts run out.
func Open(ctx context.Context, cfg config.DatabaseConfig, lggr logger.Logger) (*DataStore, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	_, err = retry.Retry[struct{}](ctx, retry.Config{
		Attempts: cfg.ConnectAttempts,
		OnRetry: func(attempt uint, err error) {
			lggr.Warnw("Database not reachable yet",
				"host", cfg.Host, "port", cfg.Port, "attempt", attempt+1, "error", err)
		},
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	lggr.Infow("Connected to database", "host", cfg.Host, "port", cfg.Port, "database", cfg.Name)

	return New(db, lggr), nil
}

// Close closes the underlying connection pool.
func (s *DataStore) Close() error {
	return s.db.base.Close()
}

func (s *DataStore) Ping(ctx context.Context) error {
	return s.db.base.PingContext(ctx)
}

// Bootstrap creates the tables that do not exist yet, in one transaction.
func (s *DataStore) Bootstrap(ctx context.Context) error {
	return s.db.inTx(ctx, func(tx *dbController) error {
		for _, t := range schema {
			if err := tx.Fixture(ctx, t.ddl); err != nil {
				return fmt.Errorf("failed to create %s table: %w", t.table, err)
			}
		}
		s.lggr.Infow("Schema applied", "tables", len(schema))

		return nil
	})
}

// Seed inserts the default rows of the lookup tables. Rows that already exist are
// left alone, so Seed can run on every start.
func (s *DataStore) Seed(ctx context.Context) error {
	seeds := []struct {
		table, column string
		values        []string
	}{
		{"gender", "gender_name", seedGenders},
		{"civilstatus", "title", seedCivilStatuses},
		{"clienttype", "title", seedClientTypes},
		{"assignmentstatus", "status_name", seedAssignmentStatuses},
		{"deductions", "deduction_type", seedDeductions},
	}

	return s.db.inTx(ctx, func(tx *dbController) error {
		for _, seed := range seeds {
			// table and column names come from the list above, never from input
			q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING`,
				seed.table, seed.column, seed.column)
			for _, v := range seed.values {
				if err := tx.Fixture(ctx, q, v); err != nil {
					return fmt.Errorf("failed to seed %s: %w", seed.table, err)
				}
			}
		}

		return nil
	})
}

// WithTransaction runs fn with a store bound to a single transaction. Calls nested in
// fn join the outer transaction.
func (s *DataStore) WithTransaction(ctx context.Context, fn datastore.TransactionLogic) error {
	return s.db.inTx(ctx, func(tx *dbController) error {
		return fn(ctx, &DataStore{db: tx, lggr: s.lggr})
	})
}

func (s *DataStore) Personnel() datastore.PersonnelStore {
	return &personnelStore{db: s.db}
}

func (s *DataStore) Clients() datastore.ClientStore {
	return &clientStore{db: s.db}
}

func (s *DataStore) Contracts() datastore.ContractStore {
	return &contractStore{db: s.db}
}

func (s *DataStore) Assignments() datastore.AssignmentStore {
	return &assignmentStore{db: s.db}
}

func (s *DataStore) Salaries() datastore.SalaryStore {
	return &salaryStore{db: s.db}
}

func (s *DataStore) Lookups() datastore.LookupStore {
	return &lookupStore{db: s.db}
}

func (s *DataStore) Users() datastore.UserStore {
	return &userStore{db: s.db}
}

func (s *DataStore) Dashboard() datastore.DashboardStore {
	return &dashboardStore{db: s.db}
}
