package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/payroll"
	"github.com/rqa-security/guardhouse/pkg/commands/text"
)

var (
	payrollReportShort = "Print the payroll of all personnel"

	payrollReportLong = text.LongDesc(`
		Prints every personnel with the salary on file, the totals, and the next pay date.
		Personnel without a salary are listed with zero amounts.
	`)

	payrollReportExample = text.Examples(`
		# Print the payroll as YAML
		guardhouse payroll report

		# Print the unpaid salaries as JSON
		guardhouse payroll report --format json --status unpaid
	`)

	payrollScheduleShort = "Print the upcoming pay dates"

	payrollScheduleLong = text.LongDesc(`
		Salaries are paid on the 15th and on the 30th of every month, or on the last day
		of months shorter than that.
	`)
)

// outputFormat is the --format flag of the report command.
type outputFormat string

const (
	formatYAML outputFormat = "yaml"
	formatJSON outputFormat = "json"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch v := outputFormat(strings.ToLower(s)); v {
	case formatYAML, formatJSON:
		*f = v
		return nil
	default:
		return fmt.Errorf("must be %s or %s", formatYAML, formatJSON)
	}
}

func (f *outputFormat) Type() string { return "format" }

type reportRow struct {
	PersonnelID     int64                   `json:"personnel_id" yaml:"personnel_id"`
	Name            string                  `json:"personnel_name" yaml:"personnel_name"`
	BaseSalary      decimal.Decimal         `json:"base_salary" yaml:"base_salary"`
	BaseBonus       decimal.Decimal         `json:"base_bonus" yaml:"base_bonus"`
	BaseAllowance   decimal.Decimal         `json:"base_allowance" yaml:"base_allowance"`
	TotalDeductions decimal.Decimal         `json:"total_deductions" yaml:"total_deductions"`
	NetSalary       decimal.Decimal         `json:"net_salary" yaml:"net_salary"`
	PaymentStatus   datastore.PaymentStatus `json:"payment_status" yaml:"payment_status"`
	LastPaymentDate datastore.Date          `json:"last_payment_date" yaml:"last_payment_date,omitempty"`
}

type report struct {
	GeneratedOn datastore.Date  `json:"generated_on" yaml:"generated_on"`
	NextPayDate datastore.Date  `json:"next_pay_date" yaml:"next_pay_date"`
	TotalNet    decimal.Decimal `json:"total_net" yaml:"total_net"`
	Unpaid      int             `json:"unpaid" yaml:"unpaid"`
	Personnel   []reportRow     `json:"personnel" yaml:"personnel"`
}

func (a *app) newPayrollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Payroll commands",
	}

	format := formatYAML
	reportCmd := &cobra.Command{
		Use:     "report",
		Short:   payrollReportShort,
		Long:    payrollReportLong,
		Example: payrollReportExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")

			return a.runPayrollReport(cmd, format, status)
		},
	}
	reportCmd.Flags().VarP(&format, "format", "f", "Output format (yaml or json)")
	reportCmd.Flags().String("status", "", "Only list salaries with this payment status (paid or unpaid)")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: payrollScheduleShort,
		Long:  payrollScheduleLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			for _, d := range payroll.NextPayDates(a.cfg.Deps.Now(), count) {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}

			return nil
		},
	}
	scheduleCmd.Flags().IntP("count", "n", 4, "Number of pay dates to print")

	cmd.AddCommand(reportCmd, scheduleCmd)

	return cmd
}

func (a *app) runPayrollReport(cmd *cobra.Command, format outputFormat, status string) error {
	var filters []datastore.FilterFunc[datastore.PersonnelSalary]
	if status != "" {
		s, err := payroll.ParsePaymentStatus(status)
		if err != nil {
			return err
		}
		filters = append(filters, datastore.PersonnelSalaryByPaymentStatus(s))
	}

	return a.withStore(cmd, func(store Store) error {
		rows, err := store.Salaries().ListPersonnelSalaries(cmd.Context())
		if err != nil {
			return err
		}
		rows = datastore.Filter(rows, filters...)
		slices.SortFunc(rows, func(x, y datastore.PersonnelSalary) int {
			return strings.Compare(x.PersonnelName, y.PersonnelName)
		})

		now := a.cfg.Deps.Now()
		r := report{
			GeneratedOn: datastore.DateOf(now),
			NextPayDate: payroll.NextPayDate(now),
			TotalNet:    decimal.Zero,
			Personnel:   make([]reportRow, 0, len(rows)),
		}
		for _, row := range rows {
			r.TotalNet = r.TotalNet.Add(row.NetSalary)
			if row.HasSalary && row.PaymentStatus != datastore.PaymentStatusPaid {
				r.Unpaid++
			}
			r.Personnel = append(r.Personnel, reportRow{
				PersonnelID:     row.PersonnelID,
				Name:            row.PersonnelName,
				BaseSalary:      row.BaseSalary,
				BaseBonus:       row.BaseBonus,
				BaseAllowance:   row.BaseAllowance,
				TotalDeductions: row.TotalDeductions,
				NetSalary:       row.NetSalary,
				PaymentStatus:   row.PaymentStatus,
				LastPaymentDate: row.LastPaymentDate,
			})
		}

		return writeReport(cmd.OutOrStdout(), format, r)
	})
}

func writeReport(w io.Writer, format outputFormat, r report) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}

	return enc.Close()
}
