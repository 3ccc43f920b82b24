package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rqa-security/guardhouse/datastore"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll runs q and scans every row with scan.
func queryAll[T any](ctx context.Context, db *dbController, scan func(rowScanner) (T, error), q string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, q, args...)
	defer func(rows *sql.Rows) {
		if rows != nil {
			_ = rows.Close()
		}
	}(rows)
	if err != nil {
		return nil, err
	}

	records := []T{}
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// queryOne runs q and scans the single row it returns. No row gives notFound.
func queryOne[T any](ctx context.Context, db *dbController, notFound error, scan func(rowScanner) (T, error), q string, args ...any) (T, error) {
	record, err := scan(db.QueryRow(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return record, notFound
	}

	return record, err
}

// execOne runs a statement that must affect exactly one row. No row gives notFound.
func execOne(ctx context.Context, db *dbController, notFound error, q string, args ...any) error {
	res, err := db.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}

	return nil
}

// nullString stores an empty string as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const (
	query_INSERT_ADDRESS = `
		INSERT INTO address (street, barangay, city, province, postal_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING address_id`
	query_UPDATE_ADDRESS = `
		UPDATE address SET street = $2, barangay = $3, city = $4, province = $5, postal_code = $6
		WHERE address_id = $1`
	query_DELETE_ORPHAN_ADDRESS = `
		DELETE FROM address a
		WHERE a.address_id = $1
			AND NOT EXISTS (SELECT 1 FROM personnel p WHERE p.address_id = a.address_id)
			AND NOT EXISTS (SELECT 1 FROM client c WHERE c.address_id = a.address_id)`
)

// saveAddress updates the address current points at, or inserts a new one when there
// is none and addr has a location. It returns the address id to store on the owner.
func saveAddress(ctx context.Context, tx *dbController, current datastore.NullInt64, addr datastore.Address) (datastore.NullInt64, error) {
	if current.Valid {
		_, err := tx.Exec(ctx, query_UPDATE_ADDRESS, current,
			nullString(addr.Street), nullString(addr.Barangay), nullString(addr.City),
			nullString(addr.Province), nullString(addr.PostalCode))

		return current, err
	}
	if !addr.HasLocation() {
		return datastore.NullInt64{}, nil
	}

	var id datastore.NullInt64
	err := tx.QueryRow(ctx, query_INSERT_ADDRESS,
		nullString(addr.Street), nullString(addr.Barangay), nullString(addr.City),
		nullString(addr.Province), nullString(addr.PostalCode)).Scan(&id)

	return id, err
}

// deleteOrphanAddress removes the address when no personnel or client uses it anymore.
func deleteOrphanAddress(ctx context.Context, tx *dbController, id datastore.NullInt64) error {
	if !id.Valid {
		return nil
	}
	_, err := tx.Exec(ctx, query_DELETE_ORPHAN_ADDRESS, id)

	return err
}

// addressColumns selects the address parts of the row aliased as "a", in the order
// of addressDest.
const addressColumns = `
		COALESCE(a.street, ''), COALESCE(a.barangay, ''), COALESCE(a.city, ''),
		COALESCE(a.province, ''), COALESCE(a.postal_code, '')`

func addressDest(a *datastore.Address) []any {
	return []any{&a.Street, &a.Barangay, &a.City, &a.Province, &a.PostalCode}
}
