package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_SELECT_CLIENT = `
		SELECT c.client_id, c.business_name, COALESCE(c.contact_person, ''),
			COALESCE(c.contact_no, ''), COALESCE(c.email, ''),
			c.clienttype_id, COALESCE(ct.title, ''),
			c.address_id,` + addressColumns + `
		FROM client c
		LEFT JOIN clienttype ct ON ct.clienttype_id = c.clienttype_id
		LEFT JOIN address a ON a.address_id = c.address_id`
	query_ALL_CLIENTS = query_SELECT_CLIENT + `
		ORDER BY c.client_id DESC`
	query_SEARCH_CLIENTS = query_SELECT_CLIENT + `
		WHERE LOWER(c.business_name) LIKE $1
			OR LOWER(COALESCE(c.contact_person, '')) LIKE $1
			OR LOWER(COALESCE(c.email, '')) LIKE $1
			OR LOWER(COALESCE(c.contact_no, '')) LIKE $1
		ORDER BY c.client_id DESC`
	query_CLIENT_BY_ID = query_SELECT_CLIENT + `
		WHERE c.client_id = $1`
	query_INSERT_CLIENT = `
		INSERT INTO client (business_name, contact_person, contact_no, email, clienttype_id, address_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING client_id`
	query_LOCK_CLIENT_ADDRESS = `
		SELECT address_id FROM client
		WHERE client_id = $1
		FOR UPDATE`
	query_UPDATE_CLIENT = `
		UPDATE client SET business_name = $2, contact_person = $3, contact_no = $4,
			email = $5, clienttype_id = $6, address_id = $7
		WHERE client_id = $1`
	query_DELETE_CLIENT = `
		DELETE FROM client
		WHERE client_id = $1
		RETURNING address_id`
)

var _ datastore.ClientStore = &clientStore{}

type clientStore struct {
	db *dbController
}

func scanClient(row rowScanner) (datastore.Client, error) {
	var c datastore.Client
	dest := []any{
		&c.ClientID, &c.BusinessName, &c.ContactPerson, &c.ContactNo, &c.Email,
		&c.ClientTypeID, &c.ClientType, &c.AddressID,
	}
	if err := row.Scan(append(dest, addressDest(&c.Address)...)...); err != nil {
		return datastore.Client{}, err
	}
	c.AddressLine = c.Line()

	return c, nil
}

func (s *clientStore) List(ctx context.Context, search string) ([]datastore.Client, error) {
	var (
		records []datastore.Client
		err     error
	)
	if search == "" {
		records, err = queryAll(ctx, s.db, scanClient, query_ALL_CLIENTS)
	} else {
		records, err = queryAll(ctx, s.db, scanClient, query_SEARCH_CLIENTS, likePattern(search))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return records, nil
}

func (s *clientStore) Get(ctx context.Context, id int64) (datastore.Client, error) {
	return queryOne(ctx, s.db, datastore.ErrClientNotFound, scanClient, query_CLIENT_BY_ID, id)
}

func (s *clientStore) Create(ctx context.Context, in datastore.ClientInput) (datastore.Client, error) {
	var created datastore.Client
	err := s.db.inTx(ctx, func(tx *dbController) error {
		addressID, err := saveAddress(ctx, tx, datastore.NullInt64{}, in.Address)
		if err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}

		var id int64
		err = tx.QueryRow(ctx, query_INSERT_CLIENT,
			in.BusinessName, nullString(in.ContactPerson), nullString(in.ContactNo),
			nullString(in.Email), in.ClientTypeID, addressID,
		).Scan(&id)
		if err != nil {
			return translateError("failed to insert client", err)
		}

		created, err = (&clientStore{db: tx}).Get(ctx, id)

		return err
	})

	return created, err
}

func (s *clientStore) Update(ctx context.Context, id int64, in datastore.ClientInput) (datastore.Client, error) {
	var updated datastore.Client
	err := s.db.inTx(ctx, func(tx *dbController) error {
		var current datastore.NullInt64
		err := tx.QueryRow(ctx, query_LOCK_CLIENT_ADDRESS, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return datastore.ErrClientNotFound
		}
		if err != nil {
			return err
		}

		addressID, err := saveAddress(ctx, tx, current, in.Address)
		if err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}

		_, err = tx.Exec(ctx, query_UPDATE_CLIENT, id,
			in.BusinessName, nullString(in.ContactPerson), nullString(in.ContactNo),
			nullString(in.Email), in.ClientTypeID, addressID,
		)
		if err != nil {
			return translateError("failed to update client", err)
		}

		updated, err = (&clientStore{db: tx}).Get(ctx, id)

		return err
	})

	return updated, err
}

func (s *clientStore) Delete(ctx context.Context, id int64) error {
	return s.db.inTx(ctx, func(tx *dbController) error {
		var addressID datastore.NullInt64
		err := tx.QueryRow(ctx, query_DELETE_CLIENT, id).Scan(&addressID)
		if errors.Is(err, sql.ErrNoRows) {
			return datastore.ErrClientNotFound
		}
		if err != nil {
			return translateDeleteError("failed to delete client", err)
		}

		return deleteOrphanAddress(ctx, tx, addressID)
	})
}
