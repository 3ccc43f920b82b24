package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_DASHBOARD_COUNTS = `
		SELECT
			(SELECT COUNT(*) FROM personnel),
			(SELECT COUNT(*) FROM client),
			(SELECT COUNT(*) FROM contract),
			(SELECT COUNT(*) FROM assignment a
				JOIN assignmentstatus s ON s.status_id = a.status_id
				WHERE LOWER(s.status_name) = 'active')`
	query_UPCOMING_ASSIGNMENTS = query_SELECT_ASSIGNMENT + `
		WHERE a.start_date >= $1::date AND a.start_date <= $1::date + $2::integer
		ORDER BY a.start_date ASC, a.assignment_id ASC
		LIMIT $3`
	query_RECENT_ASSIGNMENTS = query_SELECT_ASSIGNMENT + `
		ORDER BY a.assignment_id DESC
		LIMIT $1`
)

var _ datastore.DashboardStore = &dashboardStore{}

type dashboardStore struct {
	db *dbController
}

func (s *dashboardStore) Counts(ctx context.Context) (datastore.DashboardCounts, error) {
	var c datastore.DashboardCounts
	err := s.db.QueryRow(ctx, query_DASHBOARD_COUNTS).Scan(
		&c.Personnel, &c.Clients, &c.Contracts, &c.ActiveAssignments,
	)
	if err != nil {
		return datastore.DashboardCounts{}, fmt.Errorf("failed to count records: %w", err)
	}

	return c, nil
}

func (s *dashboardStore) UpcomingAssignments(ctx context.Context, from datastore.Date, within time.Duration, limit int) ([]datastore.Assignment, error) {
	days := int(within / (24 * time.Hour))
	records, err := queryAll(ctx, s.db, scanAssignment, query_UPCOMING_ASSIGNMENTS, from, days, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming assignments: %w", err)
	}

	return records, nil
}

func (s *dashboardStore) RecentAssignments(ctx context.Context, limit int) ([]datastore.Assignment, error) {
	records, err := queryAll(ctx, s.db, scanAssignment, query_RECENT_ASSIGNMENTS, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent assignments: %w", err)
	}

	return records, nil
}
