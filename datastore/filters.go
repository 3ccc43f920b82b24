package datastore

// FilterFunc narrows a slice of records. Filters are composable: Filter applies them
// in order, each one receiving the output of the previous.
//
//	paid := Filter(rows,
//		PersonnelSalaryByPaymentStatus(PaymentStatusPaid),
//		PersonnelSalaryWithSalary(),
//	)
type FilterFunc[R any] func([]R) []R

// Filter applies filters to records in order.
func Filter[R any](records []R, filters ...FilterFunc[R]) []R {
	for _, f := range filters {
		records = f(records)
	}

	return records
}

// Where returns a filter that keeps the records for which the predicate returns true.
func Where[R any](predicate func(R) bool) FilterFunc[R] {
	return func(records []R) []R {
		filtered := make([]R, 0, len(records))
		for _, record := range records {
			if predicate(record) {
				filtered = append(filtered, record)
			}
		}

		return filtered
	}
}

// PersonnelSalaryByPaymentStatus keeps the rows with the given payment status. Filtering
// by unpaid keeps every row that is not paid, including personnel without a salary.
func PersonnelSalaryByPaymentStatus(status PaymentStatus) FilterFunc[PersonnelSalary] {
	return Where(func(row PersonnelSalary) bool {
		if status == PaymentStatusUnpaid {
			return row.PaymentStatus != PaymentStatusPaid
		}

		return row.PaymentStatus == status
	})
}

// PersonnelSalaryWithSalary keeps the personnel that have a salary on file.
func PersonnelSalaryWithSalary() FilterFunc[PersonnelSalary] {
	return Where(func(row PersonnelSalary) bool {
		return row.HasSalary
	})
}

// AssignmentByActive keeps the active assignments.
func AssignmentByActive() FilterFunc[Assignment] {
	return Where(Assignment.IsActive)
}
