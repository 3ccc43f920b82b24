package datastore

import "errors"

var (
	ErrPersonnelNotFound  = errors.New("personnel not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrContractNotFound   = errors.New("contract not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSalaryNotFound     = errors.New("salary record not found")
	ErrUserNotFound       = errors.New("user not found")

	// ErrConflict is returned when a write collides with a unique constraint.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference is returned when a write points at a row that does not exist,
	// e.g. an assignment for an unknown contract.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrStillReferenced is returned when a delete is blocked by dependent rows.
	ErrStillReferenced = errors.New("record is still referenced by other records")
)

// IsNotFound reports whether err is one of the not found errors of this package.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrPersonnelNotFound,
		ErrClientNotFound,
		ErrContractNotFound,
		ErrAssignmentNotFound,
		ErrSalaryNotFound,
		ErrUserNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
