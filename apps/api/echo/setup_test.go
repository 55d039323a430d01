package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/payment"
	"github.com/walimuhq/walimu/core/teacher"
	inmemdb "github.com/walimuhq/walimu/storage/database/inmem"
	testutil "github.com/walimuhq/walimu/tests"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

func newTestServer(t *testing.T) (Server, teacher.Repository) {
	t.Helper()

	conf := &core.Config{
		TestMode: true,
		Payment: core.PaymentConfig{
			ProcessingDelay: 50 * time.Millisecond,
			BonusRefDate:    "2023-12-15",
		},
	}

	repo := inmemdb.NewTeacherRepository(inmemdb.Open())
	svc := teacher.NewService(repo)

	validate, translator := testutil.NewValidator()
	payment.InitValidators(validate, translator)

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     testLogger{},
		TeacherSvc: svc,
		Ledger:     payment.NewLedger(conf),
		Processor:  payment.NewProcessor(svc, conf, testLogger{}),
		Validate:   validate,
		Translator: translator,
	})
	return srv, repo
}

func doRequest(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
