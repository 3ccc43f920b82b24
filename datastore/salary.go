package datastore

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentStatus records whether the current salary of a personnel has been paid out.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// Deduction is a deduction type such as a tax or a government contribution.
type Deduction struct {
	DeductionID   int64  `json:"deduction_id"`
	DeductionType string `json:"deduction_type"`
}

// SalaryDeduction is one deduction line of a salary record.
type SalaryDeduction struct {
	DeductionID   int64           `json:"deduction_id"`
	DeductionType string          `json:"deduction_type"`
	Amount        decimal.Decimal `json:"amount"`
}

// PersonnelSalary is one row of the payroll overview: every personnel with the salary
// figures on file, zeroes when none exist yet.
type PersonnelSalary struct {
	PersonnelID     int64           `json:"personnel_id"`
	PersonnelName   string          `json:"personnel_name"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	BaseBonus       decimal.Decimal `json:"base_bonus"`
	BaseAllowance   decimal.Decimal `json:"base_allowance"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	HasSalary       bool            `json:"has_salary"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	LastPaymentDate Date            `json:"last_payment_date"`
}

// SalaryRecord is the computed salary of a personnel.
type SalaryRecord struct {
	SalaryID        int64           `json:"salary_id"`
	PersonnelID     int64           `json:"personnel_id"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetGross        decimal.Decimal `json:"net_gross"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	LastPaymentDate Date            `json:"last_payment_date"`
}

// SalaryLine is a deduction amount submitted for a salary calculation.
type SalaryLine struct {
	DeductionID int64
	Amount      decimal.Decimal
}

// SalaryCalculation is a computed salary ready to be persisted.
type SalaryCalculation struct {
	PersonnelID     int64
	BaseSalary      decimal.Decimal
	BaseBonus       decimal.Decimal
	BaseAllowance   decimal.Decimal
	Gross           decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
	PaymentStatus   PaymentStatus
	// PaidOn is stored as the last payment date when PaymentStatus is paid.
	PaidOn     Date
	Deductions []SalaryLine
}

// SalaryStore manages base salaries, computed salary records and their deductions.
type SalaryStore interface {
	ListPersonnelSalaries(ctx context.Context) ([]PersonnelSalary, error)
	Deductions(ctx context.Context) ([]Deduction, error)
	// Salary returns the salary record of the personnel, or ErrSalaryNotFound.
	Salary(ctx context.Context, personnelID int64) (SalaryRecord, error)
	// PersonnelDeductions returns the deduction lines of the personnel's current salary record.
	PersonnelDeductions(ctx context.Context, personnelID int64) ([]SalaryDeduction, error)
	// SaveSalary upserts the base salary, the salary record and its deduction lines
	// atomically, and returns the salary id.
	SaveSalary(ctx context.Context, calc SalaryCalculation) (int64, error)
	// SetPaymentStatus marks the personnel's salary record as paid or unpaid. Marking it
	// paid stamps the payment date. A personnel without a salary record gives
	// ErrSalaryNotFound.
	SetPaymentStatus(ctx context.Context, personnelID int64, status PaymentStatus, on Date) error
	// DeleteSalary removes all salary data of the personnel. Deleting a personnel without
	// salary data is not an error.
	DeleteSalary(ctx context.Context, personnelID int64) error
}
