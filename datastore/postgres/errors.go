package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqUniqueViolation     pq.ErrorCode = "23505"
)

// translateError maps Postgres constraint violations raised by an insert or update onto
// the datastore sentinels. Other errors are wrapped with op unchanged.
func translateError(op string, err error) error {
	return translate(op, err, datastore.ErrInvalidReference)
}

// translateDeleteError is translateError for deletes, where a foreign key violation
// means the row is still referenced elsewhere.
func translateDeleteError(op string, err error) error {
	return translate(op, err, datastore.ErrStillReferenced)
}

// translate classifies by SQLSTATE only; the message text depends on lc_messages.
func translate(op string, err, fkErr error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, datastore.ErrConflict, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, fkErr, pqErr.Constraint)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-folded "contains" pattern for LIKE, escaping wildcards
// in the search term.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
