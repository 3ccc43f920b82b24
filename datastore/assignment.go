package datastore

import (
	"context"
	"strings"
)

// AssignmentStatusActive is the status name counted as an active deployment.
const AssignmentStatusActive = "active"

// Assignment deploys one personnel to a client site under a contract.
type Assignment struct {
	AssignmentID  int64     `json:"assignment_id"`
	PersonnelID   int64     `json:"personnel_id"`
	PersonnelName string    `json:"personnel_name"`
	ContractID    int64     `json:"contract_id"`
	ContractTitle string    `json:"contract_title"`
	ClientName    string    `json:"client_name"`
	StartDate     Date      `json:"start_date"`
	EndDate       Date      `json:"end_date"`
	StatusID      NullInt64 `json:"status_id"`
	Status        string    `json:"status"`
}

// IsActive reports whether the assignment status is "active", ignoring case.
func (a Assignment) IsActive() bool {
	return strings.EqualFold(a.Status, AssignmentStatusActive)
}

// AssignmentInput carries the writable fields of an assignment.
type AssignmentInput struct {
	PersonnelID NullInt64 `json:"personnel_id" validate:"required,gt=0"`
	ContractID  NullInt64 `json:"contract_id" validate:"required,gt=0"`
	StartDate   Date      `json:"start_date" validate:"required"`
	EndDate     Date      `json:"end_date"`
	StatusID    NullInt64 `json:"status_id" validate:"omitempty,gt=0"`
}

// AssignmentStore manages assignments.
type AssignmentStore interface {
	// List returns assignments ordered by newest first. A non-empty search is matched
	// against the assignment id, personnel name, contract title and status.
	List(ctx context.Context, search string) ([]Assignment, error)
	Get(ctx context.Context, id int64) (Assignment, error)
	Create(ctx context.Context, in AssignmentInput) (Assignment, error)
	Update(ctx context.Context, id int64, in AssignmentInput) (Assignment, error)
	Delete(ctx context.Context, id int64) error
}
