package payment

import (
	"testing"
	"time"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/teacher"
)

func testConfig() *core.Config {
	return &core.Config{
		Payment: core.PaymentConfig{
			ProcessingDelay: 10 * time.Millisecond,
			BonusRefDate:    "2023-12-15",
		},
	}
}

func payrollTeacher(id, name string, salary, bonuses float64, status string, lastPayment time.Time) teacher.Teacher {
	return teacher.Teacher{
		ID:   id,
		Name: name,
		Payment: teacher.PaymentInfo{
			Salary:      salary,
			Status:      status,
			LastPayment: lastPayment,
			Method:      teacher.MethodBank,
			Bonuses:     bonuses,
		},
	}
}

func TestLedgerDerive(t *testing.T) {
	ledger := NewLedger(testConfig())
	now := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	lastPayment := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	tchr := payrollTeacher("t1", "Sarah Johnson", 65000, 2500, teacher.PaymentPaid, lastPayment)
	events := ledger.Derive(tchr, now)
	if len(events) != 2 {
		t.Fatalf("Derive() returned %d events, want 2", len(events))
	}

	salary := events[0]
	if salary.ID != "t1-salary" || salary.Type != TypeSalary {
		t.Errorf("salary event = %+v", salary)
	}
	if salary.Amount != 5417 { // round(65000 / 12)
		t.Errorf("salary Amount = %v, want 5417", salary.Amount)
	}
	if !salary.Date.Equal(lastPayment) {
		t.Errorf("salary Date = %v, want %v", salary.Date, lastPayment)
	}
	if salary.Status != teacher.PaymentPaid {
		t.Errorf("salary Status = %q, want %q", salary.Status, teacher.PaymentPaid)
	}

	bonus := events[1]
	if bonus.ID != "t1-bonus" || bonus.Type != TypeBonus {
		t.Errorf("bonus event = %+v", bonus)
	}
	if bonus.Amount != 2500 {
		t.Errorf("bonus Amount = %v, want 2500", bonus.Amount)
	}
	if bonus.Status != teacher.PaymentPaid {
		t.Errorf("bonus Status = %q, want paid", bonus.Status)
	}
	wantDate := time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)
	if !bonus.Date.Equal(wantDate) {
		t.Errorf("bonus Date = %v, want %v", bonus.Date, wantDate)
	}

	// no bonus event without bonuses
	tchr.Payment.Bonuses = 0
	if events := ledger.Derive(tchr, now); len(events) != 1 {
		t.Errorf("Derive() without bonuses returned %d events, want 1", len(events))
	}
}

func TestLedgerEvents(t *testing.T) {
	origNowFunc := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = origNowFunc }()

	ledger := NewLedger(testConfig())
	teachers := []teacher.Teacher{
		payrollTeacher("t1", "Sarah Johnson", 65000, 2500, teacher.PaymentPaid, time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)),
		payrollTeacher("t2", "Michael Chen", 72000, 0, teacher.PaymentPending, time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)),
	}

	t.Run("default sort is date desc", func(t *testing.T) {
		events := ledger.Events(teachers, "", "")
		if len(events) != 3 {
			t.Fatalf("Events() returned %d events, want 3", len(events))
		}
		wantIDs := []string{"t1-salary", "t2-salary", "t1-bonus"}
		for i, id := range wantIDs {
			if events[i].ID != id {
				t.Fatalf("Events() order = %v, want %v", eventIDs(events), wantIDs)
			}
		}
	})

	t.Run("sort by amount desc", func(t *testing.T) {
		events := ledger.Events(teachers, "", SortByAmount)
		// 6000 (t2 salary), 5417 (t1 salary), 2500 (t1 bonus)
		wantIDs := []string{"t2-salary", "t1-salary", "t1-bonus"}
		for i, id := range wantIDs {
			if events[i].ID != id {
				t.Fatalf("Events() order = %v, want %v", eventIDs(events), wantIDs)
			}
		}
	})

	t.Run("sort by name keeps event order per teacher", func(t *testing.T) {
		events := ledger.Events(teachers, "", SortByName)
		wantIDs := []string{"t2-salary", "t1-salary", "t1-bonus"}
		for i, id := range wantIDs {
			if events[i].ID != id {
				t.Fatalf("Events() order = %v, want %v", eventIDs(events), wantIDs)
			}
		}
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		events := ledger.Events(teachers, "SARAH", "")
		if len(events) != 2 {
			t.Fatalf("Events() returned %d events, want 2", len(events))
		}
		for _, evt := range events {
			if evt.TeacherID != "t1" {
				t.Errorf("unexpected event %+v", evt)
			}
		}
	})

	t.Run("search with no match", func(t *testing.T) {
		if events := ledger.Events(teachers, "nobody", ""); len(events) != 0 {
			t.Errorf("Events() returned %d events, want 0", len(events))
		}
	})

	t.Run("unknown sort key falls back to date", func(t *testing.T) {
		events := ledger.Events(teachers, "", "wat")
		if events[0].ID != "t1-salary" {
			t.Errorf("Events() first = %q, want t1-salary", events[0].ID)
		}
	})
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      string
		lastPayment time.Time
		want        string
	}{
		{
			name:        "pending from a previous month is overdue",
			status:      teacher.PaymentPending,
			lastPayment: time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC),
			want:        teacher.PaymentOverdue,
		},
		{
			name:        "pending within the current month stays pending",
			status:      teacher.PaymentPending,
			lastPayment: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
			want:        teacher.PaymentPending,
		},
		{
			name:        "paid is never escalated",
			status:      teacher.PaymentPaid,
			lastPayment: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:        teacher.PaymentPaid,
		},
		{
			name:        "overdue stays overdue",
			status:      teacher.PaymentOverdue,
			lastPayment: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
			want:        teacher.PaymentOverdue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tchr := payrollTeacher("t1", "A", 60000, 0, tt.status, tt.lastPayment)
			if got := EffectiveStatus(tchr, now); got != tt.want {
				t.Errorf("EffectiveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterByStatus(t *testing.T) {
	origNowFunc := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = origNowFunc }()

	teachers := []teacher.Teacher{
		payrollTeacher("t1", "A", 65000, 0, teacher.PaymentPaid, time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)),
		payrollTeacher("t2", "B", 72000, 0, teacher.PaymentPending, time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)),
		payrollTeacher("t3", "C", 58000, 0, teacher.PaymentPending, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)),
	}

	tests := []struct {
		status  string
		wantIDs []string
	}{
		{status: "all", wantIDs: []string{"t1", "t2", "t3"}},
		{status: "", wantIDs: []string{"t1", "t2", "t3"}},
		{status: teacher.PaymentPaid, wantIDs: []string{"t1"}},
		{status: teacher.PaymentPending, wantIDs: []string{"t3"}},
		{status: teacher.PaymentOverdue, wantIDs: []string{"t2"}}, // derived, not stored
	}
	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			got := FilterByStatus(teachers, tt.status)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterByStatus() returned %d teachers, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("FilterByStatus()[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func eventIDs(events []Event) []string {
	ids := make([]string, 0, len(events))
	for _, evt := range events {
		ids = append(ids, evt.ID)
	}
	return ids
}
