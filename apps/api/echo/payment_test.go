package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walimuhq/walimu/core/payment"
	"github.com/walimuhq/walimu/core/teacher"
	testutil "github.com/walimuhq/walimu/tests"
)

func seedPayroll(t *testing.T, repo teacher.Repository) (teacher.Teacher, teacher.Teacher) {
	t.Helper()

	sarah := testutil.CreateTeacher(t, repo, "Sarah Johnson", "sarah@school.edu", "Mathematics", 4.8,
		func(tchr *teacher.Teacher) {
			tchr.Payment.Salary = 65000
			tchr.Payment.Status = teacher.PaymentPaid
			tchr.Payment.Bonuses = 2500
			tchr.Payment.LastPayment = time.Now().UTC()
		})
	michael := testutil.CreateTeacher(t, repo, "Michael Chen", "michael@school.edu", "Science", 4.9,
		func(tchr *teacher.Teacher) {
			tchr.Payment.Salary = 72000
			tchr.Payment.Status = teacher.PaymentPending
			tchr.Payment.LastPayment = time.Now().UTC().AddDate(0, -2, 0)
		})
	return sarah, michael
}

func TestPaymentHistory(t *testing.T) {
	srv, repo := newTestServer(t)
	sarah, michael := seedPayroll(t, repo)

	t.Run("all events", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []payment.Event
		decodeJSON(t, rec, &got)
		require.Len(t, got, 3) // two salaries plus one bonus
	})

	t.Run("sorted by amount", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments?sort=amount", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []payment.Event
		decodeJSON(t, rec, &got)
		require.Len(t, got, 3)
		assert.Equal(t, michael.ID+"-salary", got[0].ID)
		assert.Equal(t, float64(6000), got[0].Amount)
		assert.Equal(t, float64(5417), got[1].Amount)
	})

	t.Run("search by teacher name", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments?search=sarah", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []payment.Event
		decodeJSON(t, rec, &got)
		require.Len(t, got, 2)
		for _, evt := range got {
			assert.Equal(t, sarah.ID, evt.TeacherID)
		}
	})

	t.Run("no match returns empty list not null", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments?search=nobody", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestPaymentStats(t *testing.T) {
	srv, repo := newTestServer(t)
	seedPayroll(t, repo)

	rec := doRequest(t, srv, http.MethodGet, "/v1/payments/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got teacher.PayrollSummary
	decodeJSON(t, rec, &got)
	assert.Equal(t, 1, got.PaidCount)
	assert.Equal(t, 1, got.PendingCount)
	assert.Equal(t, float64(2500), got.TotalBonuses)
	assert.InDelta(t, (65000.0+72000.0)/12, got.MonthlyPayroll, 0.001)
}

func TestPaymentTeachersByStatus(t *testing.T) {
	srv, repo := newTestServer(t)
	sarah, michael := seedPayroll(t, repo)

	t.Run("paid", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments/teachers?status=paid", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []teacher.Teacher
		decodeJSON(t, rec, &got)
		require.Len(t, got, 1)
		assert.Equal(t, sarah.ID, got[0].ID)
	})

	t.Run("overdue is derived from the stale pending payment", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments/teachers?status=overdue", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []teacher.Teacher
		decodeJSON(t, rec, &got)
		require.Len(t, got, 1)
		assert.Equal(t, michael.ID, got[0].ID)
	})

	t.Run("all", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/v1/payments/teachers?status=all", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []teacher.Teacher
		decodeJSON(t, rec, &got)
		assert.Len(t, got, 2)
	})
}

func TestPaymentProcess(t *testing.T) {
	srv, repo := newTestServer(t)
	_, michael := seedPayroll(t, repo)

	body := map[string]interface{}{
		"teacher_id": michael.ID,
		"amount":     6000,
		"method":     teacher.MethodDigital,
		"type":       payment.TypeSalary,
	}

	rec := doRequest(t, srv, http.MethodPost, "/v1/payments/process", body)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var res payment.Result
	decodeJSON(t, rec, &res)
	assert.Equal(t, payment.StateProcessing, res.State)
	assert.Equal(t, michael.ID, res.TeacherID)

	// a second request while the first is still processing is rejected
	rec = doRequest(t, srv, http.MethodPost, "/v1/payments/process", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// the paid transition lands once the processing delay elapses
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := repo.GetTeacherByID(michael.ID)
		require.NoError(t, err)
		if got.Payment.Status == teacher.PaymentPaid {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("payment never completed, status %q", got.Payment.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPaymentProcessValidation(t *testing.T) {
	srv, repo := newTestServer(t)
	sarah, _ := seedPayroll(t, repo)

	t.Run("unknown teacher", func(t *testing.T) {
		body := map[string]interface{}{"teacher_id": "nope", "amount": 100, "method": "bank", "type": "salary"}
		rec := doRequest(t, srv, http.MethodPost, "/v1/payments/process", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid amount and method", func(t *testing.T) {
		body := map[string]interface{}{"teacher_id": sarah.ID, "amount": 0, "method": "cash", "type": "salary"}
		rec := doRequest(t, srv, http.MethodPost, "/v1/payments/process", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var fldErrs map[string]string
		decodeJSON(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "amount")
		assert.Contains(t, fldErrs, "method")
	})
}
