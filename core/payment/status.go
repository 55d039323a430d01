package payment

import (
	"time"

	"github.com/walimuhq/walimu/core/teacher"
)

// EffectiveStatus derives the payment status shown to consumers.
// A pending payment whose last payment precedes the start of the
// current billing month is overdue. The result is computed on read and
// never stored on the entity.
func EffectiveStatus(tchr teacher.Teacher, now time.Time) string {
	if tchr.Payment.Status == teacher.PaymentPending {
		periodStart := billingPeriodStart(now)
		if tchr.Payment.LastPayment.Before(periodStart) {
			return teacher.PaymentOverdue
		}
	}
	return tchr.Payment.Status
}

// billingPeriodStart is the first instant of the calendar month of `now`, in UTC.
func billingPeriodStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
