package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_SELECT_CONTRACT = `
		SELECT c.contract_id, c.client_id, c.company_name, c.contract_type, c.start_date, c.end_date,
			c.contract_value, COALESCE(c.payment_terms, ''), c.status, COALESCE(c.notes, '')
		FROM contract c`
	query_ALL_CONTRACTS = query_SELECT_CONTRACT + `
		ORDER BY c.contract_id DESC`
	query_CONTRACT_BY_ID = query_SELECT_CONTRACT + `
		WHERE c.contract_id = $1`
	query_CLIENT_NAME = `
		SELECT business_name FROM client
		WHERE client_id = $1`
	query_INSERT_CONTRACT = `
		INSERT INTO contract (client_id, company_name, contract_type, start_date, end_date,
			contract_value, payment_terms, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING contract_id`
	query_UPDATE_CONTRACT = `
		UPDATE contract SET client_id = $2, company_name = $3, contract_type = $4, start_date = $5,
			end_date = $6, contract_value = $7, payment_terms = $8, status = $9, notes = $10
		WHERE contract_id = $1`
	query_DELETE_CONTRACT = `
		DELETE FROM contract
		WHERE contract_id = $1`
	query_EXTEND_CONTRACT = `
		UPDATE contract SET end_date = (end_date + make_interval(years => $2))::date, status = 'active'
		WHERE contract_id = $1`
)

var _ datastore.ContractStore = &contractStore{}

type contractStore struct {
	db *dbController
}

func scanContract(row rowScanner) (datastore.Contract, error) {
	var c datastore.Contract
	err := row.Scan(
		&c.ContractID, &c.ClientID, &c.CompanyName, &c.ContractType, &c.StartDate, &c.EndDate,
		&c.ContractValue, &c.PaymentTerms, &c.Status, &c.Notes,
	)

	return c, err
}

func (s *contractStore) List(ctx context.Context) ([]datastore.Contract, error) {
	records, err := queryAll(ctx, s.db, scanContract, query_ALL_CONTRACTS)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	return records, nil
}

func (s *contractStore) Get(ctx context.Context, id int64) (datastore.Contract, error) {
	return queryOne(ctx, s.db, datastore.ErrContractNotFound, scanContract, query_CONTRACT_BY_ID, id)
}

// companyName resolves the company of a contract: the client's business name when the
// contract is linked to a client, the submitted name otherwise.
func companyName(ctx context.Context, tx *dbController, in datastore.ContractInput) (string, error) {
	if !in.ClientID.Valid {
		return in.CompanyName, nil
	}

	var name string
	err := tx.QueryRow(ctx, query_CLIENT_NAME, in.ClientID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("client %d: %w", in.ClientID.Int64, datastore.ErrInvalidReference)
	}

	return name, err
}

func contractStatus(in datastore.ContractInput) datastore.ContractStatus {
	if in.Status == "" {
		return datastore.ContractStatusActive
	}

	return in.Status
}

func (s *contractStore) Create(ctx context.Context, in datastore.ContractInput) (datastore.Contract, error) {
	var created datastore.Contract
	err := s.db.inTx(ctx, func(tx *dbController) error {
		company, err := companyName(ctx, tx, in)
		if err != nil {
			return err
		}

		var id int64
		err = tx.QueryRow(ctx, query_INSERT_CONTRACT,
			in.ClientID, company, in.ContractType, in.StartDate, in.EndDate,
			in.ContractValue, nullString(in.PaymentTerms), contractStatus(in), nullString(in.Notes),
		).Scan(&id)
		if err != nil {
			return translateError("failed to insert contract", err)
		}

		created, err = (&contractStore{db: tx}).Get(ctx, id)

		return err
	})

	return created, err
}

func (s *contractStore) Update(ctx context.Context, id int64, in datastore.ContractInput) (datastore.Contract, error) {
	var updated datastore.Contract
	err := s.db.inTx(ctx, func(tx *dbController) error {
		company, err := companyName(ctx, tx, in)
		if err != nil {
			return err
		}

		err = execOne(ctx, tx, datastore.ErrContractNotFound, query_UPDATE_CONTRACT, id,
			in.ClientID, company, in.ContractType, in.StartDate, in.EndDate,
			in.ContractValue, nullString(in.PaymentTerms), contractStatus(in), nullString(in.Notes),
		)
		if err != nil {
			return translateError("failed to update contract", err)
		}

		updated, err = (&contractStore{db: tx}).Get(ctx, id)

		return err
	})

	return updated, err
}

func (s *contractStore) Delete(ctx context.Context, id int64) error {
	err := execOne(ctx, s.db, datastore.ErrContractNotFound, query_DELETE_CONTRACT, id)
	if err != nil {
		return translateDeleteError("failed to delete contract", err)
	}

	return nil
}

func (s *contractStore) Extend(ctx context.Context, id int64, years int) (datastore.Contract, error) {
	if years <= 0 {
		return datastore.Contract{}, fmt.Errorf("contract extension must be at least one year, got %d", years)
	}

	var extended datastore.Contract
	err := s.db.inTx(ctx, func(tx *dbController) error {
		if err := execOne(ctx, tx, datastore.ErrContractNotFound, query_EXTEND_CONTRACT, id, years); err != nil {
			return err
		}

		var err error
		extended, err = (&contractStore{db: tx}).Get(ctx, id)

		return err
	})

	return extended, err
}
