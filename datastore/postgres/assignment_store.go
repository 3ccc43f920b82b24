package postgres

import (
	"context"
	"fmt"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_SELECT_ASSIGNMENT = `
		SELECT a.assignment_id, a.personnel_id, p.personnel_name, a.contract_id,
			CONCAT_WS(' - ', NULLIF(c.contract_type, ''), c.company_name),
			COALESCE(cl.business_name, c.company_name),
			a.start_date, a.end_date, a.status_id, COALESCE(s.status_name, '')
		FROM assignment a
		JOIN personnel p ON p.personnel_id = a.personnel_id
		JOIN contract c ON c.contract_id = a.contract_id
		LEFT JOIN client cl ON cl.client_id = c.client_id
		LEFT JOIN assignmentstatus s ON s.status_id = a.status_id`
	query_ALL_ASSIGNMENTS = query_SELECT_ASSIGNMENT + `
		ORDER BY a.assignment_id DESC`
	query_SEARCH_ASSIGNMENTS = query_SELECT_ASSIGNMENT + `
		WHERE CAST(a.assignment_id AS TEXT) LIKE $1
			OR LOWER(p.personnel_name) LIKE $1
			OR LOWER(CONCAT_WS(' - ', NULLIF(c.contract_type, ''), c.company_name)) LIKE $1
			OR LOWER(COALESCE(s.status_name, '')) LIKE $1
		ORDER BY a.assignment_id DESC`
	query_ASSIGNMENT_BY_ID = query_SELECT_ASSIGNMENT + `
		WHERE a.assignment_id = $1`
	query_INSERT_ASSIGNMENT = `
		INSERT INTO assignment (personnel_id, contract_id, start_date, end_date, status_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING assignment_id`
	query_UPDATE_ASSIGNMENT = `
		UPDATE assignment SET personnel_id = $2, contract_id = $3, start_date = $4, end_date = $5, status_id = $6
		WHERE assignment_id = $1`
	query_DELETE_ASSIGNMENT = `
		DELETE FROM assignment
		WHERE assignment_id = $1`
)

var _ datastore.AssignmentStore = &assignmentStore{}

type assignmentStore struct {
	db *dbController
}

func scanAssignment(row rowScanner) (datastore.Assignment, error) {
	var a datastore.Assignment
	err := row.Scan(
		&a.AssignmentID, &a.PersonnelID, &a.PersonnelName, &a.ContractID,
		&a.ContractTitle, &a.ClientName,
		&a.StartDate, &a.EndDate, &a.StatusID, &a.Status,
	)

	return a, err
}

func (s *assignmentStore) List(ctx context.Context, search string) ([]datastore.Assignment, error) {
	var (
		records []datastore.Assignment
		err     error
	)
	if search == "" {
		records, err = queryAll(ctx, s.db, scanAssignment, query_ALL_ASSIGNMENTS)
	} else {
		records, err = queryAll(ctx, s.db, scanAssignment, query_SEARCH_ASSIGNMENTS, likePattern(search))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return records, nil
}

func (s *assignmentStore) Get(ctx context.Context, id int64) (datastore.Assignment, error) {
	return queryOne(ctx, s.db, datastore.ErrAssignmentNotFound, scanAssignment, query_ASSIGNMENT_BY_ID, id)
}

func (s *assignmentStore) Create(ctx context.Context, in datastore.AssignmentInput) (datastore.Assignment, error) {
	var created datastore.Assignment
	err := s.db.inTx(ctx, func(tx *dbController) error {
		var id int64
		err := tx.QueryRow(ctx, query_INSERT_ASSIGNMENT,
			in.PersonnelID, in.ContractID, in.StartDate, in.EndDate, in.StatusID,
		).Scan(&id)
		if err != nil {
			return translateError("failed to insert assignment", err)
		}

		created, err = (&assignmentStore{db: tx}).Get(ctx, id)

		return err
	})

	return created, err
}

func (s *assignmentStore) Update(ctx context.Context, id int64, in datastore.AssignmentInput) (datastore.Assignment, error) {
	var updated datastore.Assignment
	err := s.db.inTx(ctx, func(tx *dbController) error {
		err := execOne(ctx, tx, datastore.ErrAssignmentNotFound, query_UPDATE_ASSIGNMENT, id,
			in.PersonnelID, in.ContractID, in.StartDate, in.EndDate, in.StatusID,
		)
		if err != nil {
			return translateError("failed to update assignment", err)
		}

		updated, err = (&assignmentStore{db: tx}).Get(ctx, id)

		return err
	})

	return updated, err
}

func (s *assignmentStore) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, s.db, datastore.ErrAssignmentNotFound, query_DELETE_ASSIGNMENT, id)
}
