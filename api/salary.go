package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/metrics"
	"github.com/rqa-security/guardhouse/payroll"
)

// personnelSalaryView is a payroll row with its place in the pay schedule.
type personnelSalaryView struct {
	datastore.PersonnelSalary
	NextPaymentDue       datastore.Date `json:"next_payment_due"`
	DaysUntilNextPayment int            `json:"days_until_next_payment"`
	PaymentDue           bool           `json:"payment_due"`
}

type deductionLine struct {
	DeductionID datastore.NullInt64 `json:"deduction_id" validate:"required,gt=0"`
	Amount      decimal.Decimal     `json:"amount" validate:"gte=0"`
}

type calculateRequest struct {
	PersonnelID   datastore.NullInt64 `json:"personnel_id" validate:"required,gt=0"`
	BaseSalary    decimal.Decimal     `json:"base_salary" validate:"gte=0"`
	BaseBonus     decimal.NullDecimal `json:"base_bonus"`
	BaseAllowance decimal.NullDecimal `json:"base_allowance"`
	PaymentStatus string              `json:"payment_status"`
	Deductions    []deductionLine     `json:"deductions" validate:"dive"`
}

type calculateResponse struct {
	SalaryID        int64           `json:"salary_id"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

type statusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// listSalaries returns the payroll overview. ?status=paid|unpaid narrows it by payment
// status and ?with_salary=true to the personnel with a salary on file.
func (s *Server) listSalaries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filters []datastore.FilterFunc[datastore.PersonnelSalary]
	if raw := q.Get("status"); raw != "" {
		status, err := payroll.ParsePaymentStatus(raw)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		filters = append(filters, datastore.PersonnelSalaryByPaymentStatus(status))
	}
	if raw := q.Get("with_salary"); raw != "" {
		with, err := strconv.ParseBool(raw)
		if err != nil {
			s.fail(w, r, badRequest("Invalid with_salary flag: %q", raw))
			return
		}
		if with {
			filters = append(filters, datastore.PersonnelSalaryWithSalary())
		}
	}

	rows, err := s.store.Salaries().ListPersonnelSalaries(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rows = datastore.Filter(rows, filters...)

	now := s.now()
	next := payroll.NextPayDate(now)
	days := payroll.DaysUntil(now, next)
	views := make([]personnelSalaryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, personnelSalaryView{
			PersonnelSalary:      row,
			NextPaymentDue:       next,
			DaysUntilNextPayment: days,
			PaymentDue:           row.HasSalary && payroll.IsPaymentDue(row.PaymentStatus, days, s.cfg.DueWindowDays),
		})
	}

	s.ok(w, views)
}

func (s *Server) listDeductions(w http.ResponseWriter, r *http.Request) {
	deductions, err := s.store.Salaries().Deductions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, deductions)
}

func (s *Server) personnelDeductions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "personnelId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	lines, err := s.store.Salaries().PersonnelDeductions(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, lines)
}

// calculateSalary computes the salary of a personnel and saves it together with its
// base components and deduction lines.
func (s *Server) calculateSalary(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.metrics.SalaryCalculated(metrics.SalaryResultRejected)
		s.fail(w, r, err)
		return
	}

	in, err := s.payrollInput(req)
	if err != nil {
		s.metrics.SalaryCalculated(metrics.SalaryResultRejected)
		s.fail(w, r, err)
		return
	}
	res, err := payroll.Calculate(in)
	if err != nil {
		s.metrics.SalaryCalculated(metrics.SalaryResultRejected)
		s.fail(w, r, err)
		return
	}

	salaryID, err := s.store.Salaries().SaveSalary(r.Context(), res.Calculation(in, s.today()))
	if err != nil {
		s.metrics.SalaryCalculated(metrics.SalaryResultFailed)
		s.fail(w, r, err)
		return
	}
	s.metrics.SalaryCalculated(metrics.SalaryResultSaved)

	s.done(w, "Salary calculated and saved successfully", calculateResponse{
		SalaryID:        salaryID,
		GrossSalary:     res.Gross,
		TotalDeductions: res.TotalDeductions,
		NetSalary:       res.Net,
	})
}

func (s *Server) payrollInput(req calculateRequest) (payroll.Input, error) {
	status, err := payroll.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return payroll.Input{}, err
	}

	in := payroll.Input{
		PersonnelID:   req.PersonnelID.Int64,
		BaseSalary:    req.BaseSalary,
		BaseBonus:     s.cfg.DefaultBonus,
		BaseAllowance: s.cfg.DefaultAllowance,
		PaymentStatus: status,
		Deductions:    make([]datastore.SalaryLine, 0, len(req.Deductions)),
	}
	if req.BaseBonus.Valid {
		in.BaseBonus = req.BaseBonus.Decimal
	}
	if req.BaseAllowance.Valid {
		in.BaseAllowance = req.BaseAllowance.Decimal
	}
	for _, d := range req.Deductions {
		in.Deductions = append(in.Deductions, datastore.SalaryLine{DeductionID: d.DeductionID.Int64, Amount: d.Amount})
	}

	return in, nil
}

// setPaymentStatus marks the salary of a personnel as paid or unpaid and returns the
// updated salary record.
func (s *Server) setPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "personnelId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req statusRequest
	if err = s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	status, err := payroll.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	salaries := s.store.Salaries()
	if err = salaries.SetPaymentStatus(r.Context(), id, status, s.today()); err != nil {
		s.fail(w, r, err)
		return
	}
	record, err := salaries.Salary(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Payment status updated successfully", record)
}

func (s *Server) deleteSalary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "personnelId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err = s.store.Salaries().DeleteSalary(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.done(w, "Salary record deleted successfully", nil)
}
