package postgres

import (
	"context"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_ALL_GENDERS             = `SELECT gender_id, gender_name FROM gender ORDER BY gender_id`
	query_ALL_CIVIL_STATUSES      = `SELECT civilstatus_id, title FROM civilstatus ORDER BY civilstatus_id`
	query_ALL_CLIENT_TYPES        = `SELECT clienttype_id, title FROM clienttype ORDER BY clienttype_id`
	query_ALL_ASSIGNMENT_STATUSES = `SELECT status_id, status_name FROM assignmentstatus ORDER BY status_id`
)

var _ datastore.LookupStore = &lookupStore{}

type lookupStore struct {
	db *dbController
}

func (s *lookupStore) Genders(ctx context.Context) ([]datastore.Gender, error) {
	return queryAll(ctx, s.db, func(row rowScanner) (datastore.Gender, error) {
		var g datastore.Gender
		err := row.Scan(&g.GenderID, &g.GenderName)

		return g, err
	}, query_ALL_GENDERS)
}

func (s *lookupStore) CivilStatuses(ctx context.Context) ([]datastore.CivilStatus, error) {
	return queryAll(ctx, s.db, func(row rowScanner) (datastore.CivilStatus, error) {
		var cs datastore.CivilStatus
		err := row.Scan(&cs.CivilStatusID, &cs.Title)

		return cs, err
	}, query_ALL_CIVIL_STATUSES)
}

func (s *lookupStore) ClientTypes(ctx context.Context) ([]datastore.ClientType, error) {
	return queryAll(ctx, s.db, func(row rowScanner) (datastore.ClientType, error) {
		var ct datastore.ClientType
		err := row.Scan(&ct.ClientTypeID, &ct.Title)

		return ct, err
	}, query_ALL_CLIENT_TYPES)
}

func (s *lookupStore) AssignmentStatuses(ctx context.Context) ([]datastore.AssignmentStatus, error) {
	return queryAll(ctx, s.db, func(row rowScanner) (datastore.AssignmentStatus, error) {
		var st datastore.AssignmentStatus
		err := row.Scan(&st.StatusID, &st.StatusName)

		return st, err
	}, query_ALL_ASSIGNMENT_STATUSES)
}
