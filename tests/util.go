package testutil

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/teacher"
)

// NewValidator returns a validator with the roster validations and
// English translations registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	teacher.InitValidators(validate, translator)
	return validate, translator
}

// CreateTeacher inserts a roster row with sensible defaults for the
// fields tests rarely care about.
func CreateTeacher(
	t *testing.T,
	repo teacher.Repository,
	name, email, subject string,
	rating float64,
	opts ...func(*teacher.Teacher),
) teacher.Teacher {
	t.Helper()

	tstamp := time.Now().UTC()
	tchr := teacher.Teacher{
		Name:       name,
		Email:      email,
		Subject:    subject,
		Grade:      "9-12",
		Experience: 5,
		Status:     teacher.StatusActive,
		Performance: teacher.Performance{
			Rating:        rating,
			StudentsCount: 100,
			Attendance:    95,
		},
		Payment: teacher.PaymentInfo{
			Salary:      60000,
			Status:      teacher.PaymentPending,
			LastPayment: tstamp,
			Method:      teacher.MethodBank,
		},
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	for _, opt := range opts {
		opt(&tchr)
	}
	tchr, err := repo.CreateTeacher(tchr)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tchr
}
