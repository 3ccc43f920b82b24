// Package payroll holds the salary arithmetic, the pay schedule and the contract term
// calculations. It is pure: nothing in it touches the database.
package payroll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rqa-security/guardhouse/datastore"
)

// amountPlaces is the number of decimal places money is rounded to.
const amountPlaces = 2

var (
	ErrNegativeAmount       = errors.New("amounts must not be negative")
	ErrDuplicateDeduction   = errors.New("deduction listed more than once")
	ErrInvalidPaymentStatus = errors.New("payment status must be paid or unpaid")
)

// Input is a salary to be calculated for one personnel.
type Input struct {
	PersonnelID   int64
	BaseSalary    decimal.Decimal
	BaseBonus     decimal.Decimal
	BaseAllowance decimal.Decimal
	PaymentStatus datastore.PaymentStatus
	Deductions    []datastore.SalaryLine
}

// Result holds the calculated totals.
type Result struct {
	Gross           decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// Calculate sums the gross components and subtracts the deductions. The net salary
// may be negative when the deductions exceed the gross.
func Calculate(in Input) (Result, error) {
	for _, c := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"base salary", in.BaseSalary},
		{"base bonus", in.BaseBonus},
		{"base allowance", in.BaseAllowance},
	} {
		if c.value.IsNegative() {
			return Result{}, fmt.Errorf("%s %s: %w", c.name, c.value, ErrNegativeAmount)
		}
	}

	seen := make(map[int64]struct{}, len(in.Deductions))
	total := decimal.Zero
	for _, d := range in.Deductions {
		if d.Amount.IsNegative() {
			return Result{}, fmt.Errorf("deduction %d amount %s: %w", d.DeductionID, d.Amount, ErrNegativeAmount)
		}
		if _, ok := seen[d.DeductionID]; ok {
			return Result{}, fmt.Errorf("deduction %d: %w", d.DeductionID, ErrDuplicateDeduction)
		}
		seen[d.DeductionID] = struct{}{}
		total = total.Add(d.Amount.Round(amountPlaces))
	}

	gross := in.BaseSalary.Round(amountPlaces).
		Add(in.BaseBonus.Round(amountPlaces)).
		Add(in.BaseAllowance.Round(amountPlaces))

	return Result{
		Gross:           gross,
		TotalDeductions: total,
		Net:             gross.Sub(total),
	}, nil
}

// Calculation combines the input and its result into the record persisted by the
// salary store. paidOn is only kept when the input is marked paid.
func (r Result) Calculation(in Input, paidOn datastore.Date) datastore.SalaryCalculation {
	status := in.PaymentStatus
	if status == "" {
		status = datastore.PaymentStatusUnpaid
	}
	lines := make([]datastore.SalaryLine, 0, len(in.Deductions))
	for _, d := range in.Deductions {
		lines = append(lines, datastore.SalaryLine{DeductionID: d.DeductionID, Amount: d.Amount.Round(amountPlaces)})
	}
	if status != datastore.PaymentStatusPaid {
		paidOn = datastore.Date{}
	}

	return datastore.SalaryCalculation{
		PersonnelID:     in.PersonnelID,
		BaseSalary:      in.BaseSalary.Round(amountPlaces),
		BaseBonus:       in.BaseBonus.Round(amountPlaces),
		BaseAllowance:   in.BaseAllowance.Round(amountPlaces),
		Gross:           r.Gross,
		TotalDeductions: r.TotalDeductions,
		Net:             r.Net,
		PaymentStatus:   status,
		PaidOn:          paidOn,
		Deductions:      lines,
	}
}

// ParsePaymentStatus parses "paid" or "unpaid", ignoring case. An empty value is unpaid.
func ParsePaymentStatus(s string) (datastore.PaymentStatus, error) {
	switch datastore.PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", datastore.PaymentStatusUnpaid:
		return datastore.PaymentStatusUnpaid, nil
	case datastore.PaymentStatusPaid:
		return datastore.PaymentStatusPaid, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidPaymentStatus)
	}
}
