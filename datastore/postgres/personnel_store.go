package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_SELECT_PERSONNEL = `
		SELECT p.personnel_id, p.personnel_name, p.personnel_age, p.civilstatus_id, p.gender_id,
			COALESCE(p.contact_no, ''), COALESCE(p.email, ''),
			COALESCE(cs.title, ''), COALESCE(g.gender_name, ''),
			p.address_id,` + addressColumns + `
		FROM personnel p
		LEFT JOIN civilstatus cs ON cs.civilstatus_id = p.civilstatus_id
		LEFT JOIN gender g ON g.gender_id = p.gender_id
		LEFT JOIN address a ON a.address_id = p.address_id`
	query_ALL_PERSONNEL = query_SELECT_PERSONNEL + `
		ORDER BY p.personnel_id DESC`
	query_SEARCH_PERSONNEL = query_SELECT_PERSONNEL + `
		WHERE LOWER(p.personnel_name) LIKE $1
			OR LOWER(COALESCE(p.email, '')) LIKE $1
			OR LOWER(COALESCE(p.contact_no, '')) LIKE $1
		ORDER BY p.personnel_id DESC`
	query_PERSONNEL_BY_ID = query_SELECT_PERSONNEL + `
		WHERE p.personnel_id = $1`
	query_INSERT_PERSONNEL = `
		INSERT INTO personnel (personnel_name, personnel_age, civilstatus_id, gender_id, address_id, contact_no, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING personnel_id`
	query_LOCK_PERSONNEL_ADDRESS = `
		SELECT address_id FROM personnel
		WHERE personnel_id = $1
		FOR UPDATE`
	query_UPDATE_PERSONNEL = `
		UPDATE personnel SET personnel_name = $2, personnel_age = $3, civilstatus_id = $4,
			gender_id = $5, address_id = $6, contact_no = $7, email = $8
		WHERE personnel_id = $1`
	query_DELETE_PERSONNEL = `
		DELETE FROM personnel
		WHERE personnel_id = $1
		RETURNING address_id`
)

var _ datastore.PersonnelStore = &personnelStore{}

type personnelStore struct {
	db *dbController
}

func scanPersonnel(row rowScanner) (datastore.Personnel, error) {
	var p datastore.Personnel
	dest := []any{
		&p.PersonnelID, &p.Name, &p.Age, &p.CivilStatusID, &p.GenderID,
		&p.ContactNo, &p.Email, &p.CivilStatus, &p.Gender, &p.AddressID,
	}
	if err := row.Scan(append(dest, addressDest(&p.Address)...)...); err != nil {
		return datastore.Personnel{}, err
	}
	p.AddressLine = p.Line()

	return p, nil
}

func (s *personnelStore) List(ctx context.Context, search string) ([]datastore.Personnel, error) {
	var (
		records []datastore.Personnel
		err     error
	)
	if search == "" {
		records, err = queryAll(ctx, s.db, scanPersonnel, query_ALL_PERSONNEL)
	} else {
		records, err = queryAll(ctx, s.db, scanPersonnel, query_SEARCH_PERSONNEL, likePattern(search))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}

	return records, nil
}

func (s *personnelStore) Get(ctx context.Context, id int64) (datastore.Personnel, error) {
	return queryOne(ctx, s.db, datastore.ErrPersonnelNotFound, scanPersonnel, query_PERSONNEL_BY_ID, id)
}

func (s *personnelStore) Create(ctx context.Context, in datastore.PersonnelInput) (datastore.Personnel, error) {
	var created datastore.Personnel
	err := s.db.inTx(ctx, func(tx *dbController) error {
		addressID, err := saveAddress(ctx, tx, datastore.NullInt64{}, in.Address)
		if err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}

		var id int64
		err = tx.QueryRow(ctx, query_INSERT_PERSONNEL,
			in.Name, in.Age, in.CivilStatusID, in.GenderID, addressID,
			nullString(in.ContactNo), nullString(in.Email),
		).Scan(&id)
		if err != nil {
			return translateError("failed to insert personnel", err)
		}

		created, err = (&personnelStore{db: tx}).Get(ctx, id)

		return err
	})

	return created, err
}

func (s *personnelStore) Update(ctx context.Context, id int64, in datastore.PersonnelInput) (datastore.Personnel, error) {
	var updated datastore.Personnel
	err := s.db.inTx(ctx, func(tx *dbController) error {
		// the stored address wins over any address_id sent by the client
		var current datastore.NullInt64
		err := tx.QueryRow(ctx, query_LOCK_PERSONNEL_ADDRESS, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return datastore.ErrPersonnelNotFound
		}
		if err != nil {
			return err
		}

		addressID, err := saveAddress(ctx, tx, current, in.Address)
		if err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}

		_, err = tx.Exec(ctx, query_UPDATE_PERSONNEL, id,
			in.Name, in.Age, in.CivilStatusID, in.GenderID, addressID,
			nullString(in.ContactNo), nullString(in.Email),
		)
		if err != nil {
			return translateError("failed to update personnel", err)
		}

		updated, err = (&personnelStore{db: tx}).Get(ctx, id)

		return err
	})

	return updated, err
}

func (s *personnelStore) Delete(ctx context.Context, id int64) error {
	return s.db.inTx(ctx, func(tx *dbController) error {
		var addressID datastore.NullInt64
		err := tx.QueryRow(ctx, query_DELETE_PERSONNEL, id).Scan(&addressID)
		if errors.Is(err, sql.ErrNoRows) {
			return datastore.ErrPersonnelNotFound
		}
		if err != nil {
			return translateDeleteError("failed to delete personnel", err)
		}

		return deleteOrphanAddress(ctx, tx, addressID)
	})
}
