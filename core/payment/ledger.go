package payment

import (
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/teacher"
)

// Event types
const (
	TypeSalary = "salary"
	TypeBonus  = "bonus"
)

// Sort keys accepted by Ledger.Events.
const (
	SortByDate   = "date"   // most recent first
	SortByAmount = "amount" // largest first
	SortByName   = "name"   // A-Z
)

// Event is a derived, read-only payment record (salary or bonus) shown
// in the payment history view; it is never stored independently.
type Event struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	Method      string    `json:"method"`
}

// Ledger derives the unified payment history from the roster.
type Ledger struct {
	bonusRefDate time.Time
}

var nowFunc = time.Now // for tests

func NewLedger(conf *core.Config) *Ledger {
	refDate, err := time.Parse("2006-01-02", conf.Payment.BonusRefDate)
	if err != nil {
		log.Fatalf("payment.NewLedger: invalid bonus reference date %q: %v", conf.Payment.BonusRefDate, err)
	}
	return &Ledger{bonusRefDate: refDate}
}

// Derive emits the payment events for a single teacher: one salary
// event at a twelfth of the annual salary, dated at the last payment;
// plus one bonus event at the configured reference date when bonuses
// were granted. Bonus events are always paid.
func (l *Ledger) Derive(tchr teacher.Teacher, now time.Time) []Event {
	events := []Event{{
		ID:          tchr.ID + "-salary",
		TeacherID:   tchr.ID,
		TeacherName: tchr.Name,
		Amount:      math.Round(tchr.Payment.Salary / 12),
		Date:        tchr.Payment.LastPayment,
		Status:      EffectiveStatus(tchr, now),
		Type:        TypeSalary,
		Method:      tchr.Payment.Method,
	}}
	if tchr.Payment.Bonuses > 0 {
		events = append(events, Event{
			ID:          tchr.ID + "-bonus",
			TeacherID:   tchr.ID,
			TeacherName: tchr.Name,
			Amount:      tchr.Payment.Bonuses,
			Date:        l.bonusRefDate,
			Status:      teacher.PaymentPaid,
			Type:        TypeBonus,
			Method:      tchr.Payment.Method,
		})
	}
	return events
}

// Events flattens the roster into payment events, filters them by a
// case-insensitive substring match on the teacher name, and sorts them
// by the given key (SortByDate when empty or unknown). The sort is
// stable so repeated calls return identical output.
func (l *Ledger) Events(teachers []teacher.Teacher, search, sortKey string) []Event {
	now := nowFunc()

	events := make([]Event, 0, 2*len(teachers))
	for _, tchr := range teachers {
		events = append(events, l.Derive(tchr, now)...)
	}

	if search = core.CleanString(search, true /* lower */); search != "" {
		filtered := events[:0]
		for _, evt := range events {
			if strings.Contains(strings.ToLower(evt.TeacherName), search) {
				filtered = append(filtered, evt)
			}
		}
		events = filtered
	}

	switch sortKey {
	case SortByAmount:
		sort.SliceStable(events, func(i, j int) bool { return events[i].Amount > events[j].Amount })
	case SortByName:
		sort.SliceStable(events, func(i, j int) bool { return events[i].TeacherName < events[j].TeacherName })
	default: // SortByDate
		sort.SliceStable(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	}
	return events
}

// FilterByStatus keeps the teachers whose effective payment status
// matches; "all" (or empty) keeps everyone.
func FilterByStatus(teachers []teacher.Teacher, status string) []teacher.Teacher {
	if status == "" || status == "all" {
		return teachers
	}
	now := nowFunc()
	filtered := make([]teacher.Teacher, 0, len(teachers))
	for _, tchr := range teachers {
		if EffectiveStatus(tchr, now) == status {
			filtered = append(filtered, tchr)
		}
	}
	return filtered
}
