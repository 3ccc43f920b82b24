package datastore

import (
	"context"

	"github.com/shopspring/decimal"
)

// ContractStatus is the administrative status of a contract. It is set by the user and
// is independent of the term status derived from the contract dates.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusInactive  ContractStatus = "inactive"
	ContractStatusSuspended ContractStatus = "suspended"
)

// Contract is a service agreement between the agency and a client company.
type Contract struct {
	ContractID    int64           `json:"contract_id"`
	ClientID      NullInt64       `json:"client_id"`
	CompanyName   string          `json:"company_name"`
	ContractType  string          `json:"contract_type"`
	StartDate     Date            `json:"start_date"`
	EndDate       Date            `json:"end_date"`
	ContractValue decimal.Decimal `json:"contract_value"`
	PaymentTerms  string          `json:"payment_terms"`
	Status        ContractStatus  `json:"status"`
	Notes         string          `json:"notes"`
}

// Title is the label used when the contract is shown next to an assignment.
func (c Contract) Title() string {
	if c.ContractType == "" {
		return c.CompanyName
	}

	return c.ContractType + " - " + c.CompanyName
}

// ContractInput carries the writable fields of a contract. When ClientID is set the
// company name is taken from the client record.
type ContractInput struct {
	ClientID      NullInt64       `json:"client_id" validate:"omitempty,gt=0"`
	CompanyName   string          `json:"company_name" validate:"required_without=ClientID,max=255"`
	ContractType  string          `json:"contract_type" validate:"required,max=100"`
	StartDate     Date            `json:"start_date" validate:"required"`
	EndDate       Date            `json:"end_date" validate:"required"`
	ContractValue decimal.Decimal `json:"contract_value" validate:"gte=0"`
	PaymentTerms  string          `json:"payment_terms" validate:"max=50"`
	Status        ContractStatus  `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Notes         string          `json:"notes"`
}

// ContractStore manages contracts.
type ContractStore interface {
	List(ctx context.Context) ([]Contract, error)
	Get(ctx context.Context, id int64) (Contract, error)
	Create(ctx context.Context, in ContractInput) (Contract, error)
	Update(ctx context.Context, id int64, in ContractInput) (Contract, error)
	Delete(ctx context.Context, id int64) error
	// Extend pushes the end date of the contract forward by the given number of years
	// and reactivates it.
	Extend(ctx context.Context, id int64, years int) (Contract, error)
}
