package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/rqa-security/guardhouse/datastore"
)

const (
	query_PERSONNEL_SALARIES = `
		SELECT p.personnel_id, p.personnel_name,
			COALESCE(ps.base_salary, 0), COALESCE(ps.base_bonus, 0), COALESCE(ps.base_allowance, 0),
			COALESCE(s.total_deductions, 0), COALESCE(s.net_gross, 0),
			ps.personnel_id IS NOT NULL,
			COALESCE(s.payment_status, 'unpaid'), s.last_payment_date
		FROM personnel p
		LEFT JOIN personnelsalary ps ON ps.personnel_id = p.personnel_id
		LEFT JOIN salary s ON s.personnel_id = p.personnel_id
		ORDER BY p.personnel_id ASC`
	query_ALL_DEDUCTIONS = `
		SELECT deduction_id, deduction_type FROM deductions
		ORDER BY deduction_id`
	query_SALARY_BY_PERSONNEL = `
		SELECT salary_id, personnel_id, total_gross, total_deductions, net_gross,
			payment_status, last_payment_date
		FROM salary
		WHERE personnel_id = $1`
	query_PERSONNEL_DEDUCTIONS = `
		SELECT d.deduction_id, d.deduction_type, sd.amount
		FROM salarydeductions sd
		JOIN salary s ON s.salary_id = sd.salary_id
		JOIN personnel_deductions pd ON pd.deduct_id = sd.deduct_id
		JOIN deductions d ON d.deduction_id = pd.deduction_id
		WHERE s.personnel_id = $1
		ORDER BY d.deduction_id`
	query_PERSONNEL_EXISTS = `
		SELECT personnel_id FROM personnel
		WHERE personnel_id = $1
		FOR UPDATE`
	query_UPSERT_PERSONNEL_SALARY = `
		INSERT INTO personnelsalary (personnel_id, base_salary, base_bonus, base_allowance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (personnel_id)
			DO UPDATE SET base_salary = excluded.base_salary,
				base_bonus = excluded.base_bonus,
				base_allowance = excluded.base_allowance`
	query_UPSERT_SALARY = `
		INSERT INTO salary (personnel_id, total_gross, total_deductions, net_gross, payment_status, last_payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (personnel_id)
			DO UPDATE SET total_gross = excluded.total_gross,
				total_deductions = excluded.total_deductions,
				net_gross = excluded.net_gross,
				payment_status = excluded.payment_status,
				last_payment_date = COALESCE(excluded.last_payment_date, salary.last_payment_date)
		RETURNING salary_id`
	query_CLEAR_SALARY_DEDUCTIONS = `
		DELETE FROM salarydeductions
		WHERE salary_id = $1`
	query_PRUNE_PERSONNEL_DEDUCTIONS = `
		DELETE FROM personnel_deductions
		WHERE personnel_id = $1 AND NOT (deduction_id = ANY($2))`
	query_UPSERT_PERSONNEL_DEDUCTION = `
		INSERT INTO personnel_deductions (personnel_id, deduction_id, contribution_amount)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT personnel_deductions_pkey
			DO UPDATE SET contribution_amount = excluded.contribution_amount
		RETURNING deduct_id`
	query_INSERT_SALARY_DEDUCTION = `
		INSERT INTO salarydeductions (salary_id, deduct_id, amount)
		VALUES ($1, $2, $3)`
	query_SET_PAYMENT_STATUS = `
		UPDATE salary SET payment_status = $2, last_payment_date = COALESCE($3::date, last_payment_date)
		WHERE personnel_id = $1`
	query_DELETE_SALARY_DEDUCTIONS = `
		DELETE FROM salarydeductions
		WHERE salary_id IN (SELECT salary_id FROM salary WHERE personnel_id = $1)`
	query_DELETE_SALARY = `
		DELETE FROM salary
		WHERE personnel_id = $1`
	query_DELETE_PERSONNEL_DEDUCTIONS = `
		DELETE FROM personnel_deductions
		WHERE personnel_id = $1`
	query_DELETE_PERSONNEL_SALARY = `
		DELETE FROM personnelsalary
		WHERE personnel_id = $1`
)

var _ datastore.SalaryStore = &salaryStore{}

type salaryStore struct {
	db *dbController
}

func scanPersonnelSalary(row rowScanner) (datastore.PersonnelSalary, error) {
	var r datastore.PersonnelSalary
	err := row.Scan(
		&r.PersonnelID, &r.PersonnelName,
		&r.BaseSalary, &r.BaseBonus, &r.BaseAllowance,
		&r.TotalDeductions, &r.NetSalary,
		&r.HasSalary,
		&r.PaymentStatus, &r.LastPaymentDate,
	)

	return r, err
}

func scanDeduction(row rowScanner) (datastore.Deduction, error) {
	var d datastore.Deduction
	err := row.Scan(&d.DeductionID, &d.DeductionType)

	return d, err
}

func scanSalaryDeduction(row rowScanner) (datastore.SalaryDeduction, error) {
	var d datastore.SalaryDeduction
	err := row.Scan(&d.DeductionID, &d.DeductionType, &d.Amount)

	return d, err
}

func scanSalaryRecord(row rowScanner) (datastore.SalaryRecord, error) {
	var r datastore.SalaryRecord
	err := row.Scan(
		&r.SalaryID, &r.PersonnelID, &r.TotalGross, &r.TotalDeductions, &r.NetGross,
		&r.PaymentStatus, &r.LastPaymentDate,
	)

	return r, err
}

func (s *salaryStore) ListPersonnelSalaries(ctx context.Context) ([]datastore.PersonnelSalary, error) {
	records, err := queryAll(ctx, s.db, scanPersonnelSalary, query_PERSONNEL_SALARIES)
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel salaries: %w", err)
	}

	return records, nil
}

func (s *salaryStore) Deductions(ctx context.Context) ([]datastore.Deduction, error) {
	records, err := queryAll(ctx, s.db, scanDeduction, query_ALL_DEDUCTIONS)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}

	return records, nil
}

func (s *salaryStore) Salary(ctx context.Context, personnelID int64) (datastore.SalaryRecord, error) {
	return queryOne(ctx, s.db, datastore.ErrSalaryNotFound, scanSalaryRecord, query_SALARY_BY_PERSONNEL, personnelID)
}

func (s *salaryStore) PersonnelDeductions(ctx context.Context, personnelID int64) ([]datastore.SalaryDeduction, error) {
	records, err := queryAll(ctx, s.db, scanSalaryDeduction, query_PERSONNEL_DEDUCTIONS, personnelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions of personnel %d: %w", personnelID, err)
	}

	return records, nil
}

// SaveSalary writes the base salary, the salary record and one deduction line per
// entry of calc.Deductions. Deduction lines of an earlier calculation are replaced.
func (s *salaryStore) SaveSalary(ctx context.Context, calc datastore.SalaryCalculation) (int64, error) {
	var salaryID int64
	err := s.db.inTx(ctx, func(tx *dbController) error {
		var id int64
		err := tx.QueryRow(ctx, query_PERSONNEL_EXISTS, calc.PersonnelID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return datastore.ErrPersonnelNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, query_UPSERT_PERSONNEL_SALARY,
			calc.PersonnelID, calc.BaseSalary, calc.BaseBonus, calc.BaseAllowance)
		if err != nil {
			return translateError("failed to save base salary", err)
		}

		status := calc.PaymentStatus
		if status == "" {
			status = datastore.PaymentStatusUnpaid
		}
		var paidOn datastore.Date
		if status == datastore.PaymentStatusPaid {
			paidOn = calc.PaidOn
		}
		err = tx.QueryRow(ctx, query_UPSERT_SALARY,
			calc.PersonnelID, calc.Gross, calc.TotalDeductions, calc.Net, status, paidOn,
		).Scan(&salaryID)
		if err != nil {
			return translateError("failed to save salary", err)
		}

		if _, err = tx.Exec(ctx, query_CLEAR_SALARY_DEDUCTIONS, salaryID); err != nil {
			return fmt.Errorf("failed to clear salary deductions: %w", err)
		}

		ids := make([]int64, 0, len(calc.Deductions))
		for _, d := range calc.Deductions {
			ids = append(ids, d.DeductionID)
		}
		if _, err = tx.Exec(ctx, query_PRUNE_PERSONNEL_DEDUCTIONS, calc.PersonnelID, pq.Array(ids)); err != nil {
			return fmt.Errorf("failed to prune personnel deductions: %w", err)
		}

		for _, d := range calc.Deductions {
			var deductID int64
			err = tx.QueryRow(ctx, query_UPSERT_PERSONNEL_DEDUCTION,
				calc.PersonnelID, d.DeductionID, d.Amount,
			).Scan(&deductID)
			if err != nil {
				return translateError(fmt.Sprintf("failed to save deduction %d", d.DeductionID), err)
			}

			if _, err = tx.Exec(ctx, query_INSERT_SALARY_DEDUCTION, salaryID, deductID, d.Amount); err != nil {
				return translateError(fmt.Sprintf("failed to save deduction %d", d.DeductionID), err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return salaryID, nil
}

func (s *salaryStore) SetPaymentStatus(ctx context.Context, personnelID int64, status datastore.PaymentStatus, on datastore.Date) error {
	if status != datastore.PaymentStatusPaid {
		on = datastore.Date{}
	}

	return execOne(ctx, s.db, datastore.ErrSalaryNotFound, query_SET_PAYMENT_STATUS, personnelID, status, on)
}

func (s *salaryStore) DeleteSalary(ctx context.Context, personnelID int64) error {
	return s.db.inTx(ctx, func(tx *dbController) error {
		for _, q := range []string{
			query_DELETE_SALARY_DEDUCTIONS,
			query_DELETE_SALARY,
			query_DELETE_PERSONNEL_DEDUCTIONS,
			query_DELETE_PERSONNEL_SALARY,
		} {
			if _, err := tx.Exec(ctx, q, personnelID); err != nil {
				return fmt.Errorf("failed to delete salary of personnel %d: %w", personnelID, err)
			}
		}

		return nil
	})
}
