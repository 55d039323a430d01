package teacher

import (
	"errors"
	"sort"
)

// ErrEmptyRoster is returned by averaging functions on an empty
// collection; callers must substitute a defined default instead of
// propagating NaN to the presentation layer.
var ErrEmptyRoster = errors.New("empty roster")

type (
	// Summary holds the aggregate dashboard counters.
	Summary struct {
		Total         int `json:"total"`
		ActiveCount   int `json:"active_count"`
		OnLeaveCount  int `json:"on_leave_count"`
		InactiveCount int `json:"inactive_count"`
		TotalStudents int `json:"total_students"`
	}

	// PayrollSummary holds the aggregate payment dashboard counters.
	PayrollSummary struct {
		MonthlyPayroll float64 `json:"monthly_payroll"`
		TotalBonuses   float64 `json:"total_bonuses"`
		PaidCount      int     `json:"paid_count"`
		PendingCount   int     `json:"pending_count"`
		OverdueCount   int     `json:"overdue_count"`
	}
)

// Summarize counts teachers by status and totals their students.
func Summarize(teachers []Teacher) Summary {
	s := Summary{Total: len(teachers)}
	for _, t := range teachers {
		switch t.Status {
		case StatusActive:
			s.ActiveCount++
		case StatusOnLeave:
			s.OnLeaveCount++
		case StatusInactive:
			s.InactiveCount++
		}
		s.TotalStudents += t.Performance.StudentsCount
	}
	return s
}

// SummarizePayroll totals salaries (as a monthly figure) and bonuses,
// and counts teachers by stored payment status.
func SummarizePayroll(teachers []Teacher) PayrollSummary {
	var s PayrollSummary
	for _, t := range teachers {
		s.MonthlyPayroll += t.Payment.Salary / 12
		s.TotalBonuses += t.Payment.Bonuses
		switch t.Payment.Status {
		case PaymentPaid:
			s.PaidCount++
		case PaymentPending:
			s.PendingCount++
		case PaymentOverdue:
			s.OverdueCount++
		}
	}
	return s
}

// AverageRating returns the arithmetic mean of performance ratings.
func AverageRating(teachers []Teacher) (float64, error) {
	if len(teachers) == 0 {
		return 0, ErrEmptyRoster
	}
	var sum float64
	for _, t := range teachers {
		sum += t.Performance.Rating
	}
	return sum / float64(len(teachers)), nil
}

// AverageAttendance returns the arithmetic mean of attendance percentages.
func AverageAttendance(teachers []Teacher) (float64, error) {
	if len(teachers) == 0 {
		return 0, ErrEmptyRoster
	}
	var sum float64
	for _, t := range teachers {
		sum += t.Performance.Attendance
	}
	return sum / float64(len(teachers)), nil
}

// TotalStudents sums the student counts across the roster.
func TotalStudents(teachers []Teacher) int {
	var total int
	for _, t := range teachers {
		total += t.Performance.StudentsCount
	}
	return total
}

// TopPerformers returns the n highest-rated teachers, descending.
// Ties keep the input order (stable sort) so repeated calls are
// deterministic; the input slice is not mutated.
func TopPerformers(teachers []Teacher, n int) []Teacher {
	if n <= 0 {
		return nil
	}
	ranked := make([]Teacher, len(teachers))
	copy(ranked, teachers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Performance.Rating > ranked[j].Performance.Rating
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
