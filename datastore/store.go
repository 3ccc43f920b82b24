package datastore

import (
	"context"
	"time"
)

// DashboardCounts are the headline numbers of the dashboard.
type DashboardCounts struct {
	Personnel         int `json:"totalPersonnel"`
	Clients           int `json:"totalClients"`
	Contracts         int `json:"totalContracts"`
	ActiveAssignments int `json:"activeAssignments"`
}

// DashboardStore serves the aggregate queries behind the dashboard.
type DashboardStore interface {
	Counts(ctx context.Context) (DashboardCounts, error)
	// UpcomingAssignments returns up to limit assignments starting between from and
	// from+within, earliest first.
	UpcomingAssignments(ctx context.Context, from Date, within time.Duration, limit int) ([]Assignment, error)
	// RecentAssignments returns the limit most recently created assignments.
	RecentAssignments(ctx context.Context, limit int) ([]Assignment, error)
}

// TransactionLogic is the function run by Store.WithTransaction. The store passed to it
// is bound to the transaction.
type TransactionLogic func(ctx context.Context, store Store) error

// Store is the complete persistence API of the application.
type Store interface {
	Personnel() PersonnelStore
	Clients() ClientStore
	Contracts() ContractStore
	Assignments() AssignmentStore
	Salaries() SalaryStore
	Lookups() LookupStore
	Users() UserStore
	Dashboard() DashboardStore

	// WithTransaction runs fn inside a database transaction. The transaction is
	// committed when fn returns nil and rolled back when it returns an error or panics.
	WithTransaction(ctx context.Context, fn TransactionLogic) error
	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}
