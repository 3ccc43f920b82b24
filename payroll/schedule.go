package payroll

import (
	"time"

	"github.com/rqa-security/guardhouse/datastore"
)

// Salaries are paid twice a month, on the 15th and on the 30th. In months shorter than
// 30 days the second pay day is the last day of the month.
const (
	firstPayDay  = 15
	secondPayDay = 30
)

const secondsPerDay = 24 * 60 * 60

// PayDates returns the two pay dates of the month.
func PayDates(year int, month time.Month) [2]datastore.Date {
	last := daysIn(year, month)

	return [2]datastore.Date{
		datastore.NewDate(year, month, firstPayDay),
		datastore.NewDate(year, month, min(secondPayDay, last)),
	}
}

// NextPayDates returns the next n pay dates on or after the calendar date of now.
func NextPayDates(now time.Time, n int) []datastore.Date {
	if n <= 0 {
		return nil
	}

	today := datastore.DateOf(now)
	dates := make([]datastore.Date, 0, n)
	year, month := today.Year(), today.Month()
	for len(dates) < n {
		for _, d := range PayDates(year, month) {
			if len(dates) < n && !d.Before(today.Time) {
				dates = append(dates, d)
			}
		}
		if month == time.December {
			year, month = year+1, time.January
		} else {
			month++
		}
	}

	return dates
}

// NextPayDate returns the first pay date on or after the calendar date of now.
func NextPayDate(now time.Time) datastore.Date {
	return NextPayDates(now, 1)[0]
}

// DaysUntil returns the whole days from the calendar date of now until date, and zero
// for dates in the past.
func DaysUntil(now time.Time, date datastore.Date) int {
	return max(daysBetween(datastore.DateOf(now), date), 0)
}

// IsPaymentDue reports whether an unpaid salary falls due within window days.
func IsPaymentDue(status datastore.PaymentStatus, daysUntil, window int) bool {
	return status != datastore.PaymentStatusPaid && daysUntil <= window
}

func daysIn(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// daysBetween counts in seconds rather than time.Duration, which overflows past
// about 292 years.
func daysBetween(from, to datastore.Date) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
