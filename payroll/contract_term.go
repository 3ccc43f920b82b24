package payroll

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rqa-security/guardhouse/datastore"
)

// TermStatus is the state of a contract derived from its dates.
type TermStatus string

const (
	TermActive   TermStatus = "active"
	TermExpiring TermStatus = "expiring"
	TermExpired  TermStatus = "expired"
)

// expiringWithinDays is how close to its end date a contract counts as expiring.
const expiringWithinDays = 30

// ParseTermStatus parses a term status filter, ignoring case.
func ParseTermStatus(s string) (TermStatus, error) {
	switch status := TermStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case TermActive, TermExpiring, TermExpired:
		return status, nil
	default:
		return "", fmt.Errorf("unknown contract status %q", s)
	}
}

// Term describes how far along its duration a contract is.
type Term struct {
	TotalDays       int        `json:"total_days"`
	TotalMonths     int        `json:"total_months"`
	DaysRemaining   int        `json:"days_remaining"`
	MonthsRemaining int        `json:"months_remaining"`
	ProgressPercent float64    `json:"progress_percentage"`
	Status          TermStatus `json:"contract_status"`
}

// ContractTerm computes the term of a contract running from start to end, as seen on
// the calendar date of now. Months are counted as 30 days.
func ContractTerm(start, end datastore.Date, now time.Time) Term {
	today := datastore.DateOf(now)
	totalDays := daysBetween(start, end)
	remaining := daysBetween(today, end)
	elapsed := daysBetween(start, today)

	progress := 100.0
	if totalDays > 0 {
		progress = math.Min(100, math.Max(0, float64(elapsed)/float64(totalDays)*100))
	} else if elapsed < 0 {
		progress = 0
	}

	status := TermActive
	switch {
	case remaining < 0:
		status = TermExpired
	case remaining <= expiringWithinDays:
		status = TermExpiring
	}

	return Term{
		TotalDays:       totalDays,
		TotalMonths:     monthsCeil(totalDays),
		DaysRemaining:   remaining,
		MonthsRemaining: monthsCeil(remaining),
		ProgressPercent: math.Round(progress*100) / 100,
		Status:          status,
	}
}

func monthsCeil(days int) int {
	return int(math.Ceil(float64(days) / 30))
}
