package teacher

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/walimuhq/walimu/core"
)

// Statuses
const (
	StatusActive   = "active"
	StatusOnLeave  = "on-leave"
	StatusInactive = "inactive"
)

// Payment statuses
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"
)

// Payment methods
const (
	MethodBank    = "bank"
	MethodCheck   = "check"
	MethodDigital = "digital"
)

var (
	AllStatuses        = []string{StatusActive, StatusOnLeave, StatusInactive}
	AllPaymentStatuses = []string{PaymentPaid, PaymentPending, PaymentOverdue}
	AllPaymentMethods  = []string{MethodBank, MethodCheck, MethodDigital}

	statusNames = map[string]string{
		StatusActive:   "Active",
		StatusOnLeave:  "On Leave",
		StatusInactive: "Inactive",
	}
)

// StatusName returns the display name for a status; "Unknown" for anything else.
func StatusName(status string) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "Unknown"
}

type (
	// Performance holds a Teacher's observed classroom metrics.
	Performance struct {
		Rating        float64 `json:"rating"`
		StudentsCount int     `json:"students_count"`
		Attendance    float64 `json:"attendance"` // percentage, 0-100
	}

	// PaymentInfo holds a Teacher's payroll record.
	// Status and LastPayment only ever change through an explicit
	// payment action; edit operations cannot touch them.
	PaymentInfo struct {
		Salary      float64   `json:"salary"` // annual
		Status      string    `json:"status"`
		LastPayment time.Time `json:"last_payment"` // UTC
		Method      string    `json:"method"`
		Bonuses     float64   `json:"bonuses"`
	}

	Teacher struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Email       string      `json:"email"`
		Subject     string      `json:"subject"`
		Grade       string      `json:"grade"`
		Experience  int         `json:"experience"` // years
		Status      string      `json:"status"`
		Classes     []string    `json:"classes"` // ordered, duplicate-free
		Performance Performance `json:"performance"`
		Payment     PaymentInfo `json:"payment"`
		CreatedAt   time.Time   `json:"created_at"` // UTC
		UpdatedAt   time.Time   `json:"updated_at"` // UTC
	}
)

func (t *Teacher) IsActive() bool { return t.Status == StatusActive }

// HasClass reports whether the class is already assigned (case-sensitive, exact-match).
func (t *Teacher) HasClass(class string) bool {
	for _, c := range t.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Initials returns the concatenated first letters of the name's words,
// as shown on roster and payment cards.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteString(string([]rune(word)[0]))
	}
	return b.String()
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Subject     string   `json:"subject" validate:"required"`
	Grade       string   `json:"grade" validate:"required"`
	Experience  int      `json:"experience" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,teacherstatus"`
	Classes     []string `json:"classes"`
	Performance struct {
		Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
		StudentsCount int     `json:"students_count" validate:"gte=0"`
		Attendance    float64 `json:"attendance" validate:"gte=0,lte=100"`
	} `json:"performance"`
	Salary  float64 `json:"salary" validate:"gte=0"`
	Method  string  `json:"method" validate:"omitempty,paymethod"`
	Bonuses float64 `json:"bonuses" validate:"gte=0"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Grade = core.CleanString(nt.Grade)
	nt.Classes = dedupeClasses(nt.Classes)

	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an
// existing Teacher. Zero values keep the original; the payment status
// and last-payment date are deliberately absent.
type UpdateTeacher struct {
	Name        string   `json:"name"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Subject     string   `json:"subject"`
	Grade       string   `json:"grade"`
	Experience  *int     `json:"experience" validate:"omitempty,gte=0"`
	Status      string   `json:"status" validate:"omitempty,teacherstatus"`
	Classes     []string `json:"classes"`
	Performance struct {
		Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
		StudentsCount *int     `json:"students_count" validate:"omitempty,gte=0"`
		Attendance    *float64 `json:"attendance" validate:"omitempty,gte=0,lte=100"`
	} `json:"performance"`
	Salary  *float64 `json:"salary" validate:"omitempty,gte=0"`
	Method  string   `json:"method" validate:"omitempty,paymethod"`
	Bonuses *float64 `json:"bonuses" validate:"omitempty,gte=0"`
}

func (up *UpdateTeacher) Validate(origTchr Teacher, validate *validator.Validate) error {
	name := core.CleanString(up.Name)
	if name != "" {
		up.Name = name
	} else {
		up.Name = origTchr.Name
	}

	email := core.CleanString(up.Email, true /* lower */)
	if email != "" {
		up.Email = email
	} else {
		up.Email = origTchr.Email
	}

	subject := core.CleanString(up.Subject)
	if subject != "" {
		up.Subject = subject
	} else {
		up.Subject = origTchr.Subject
	}

	grade := core.CleanString(up.Grade)
	if grade != "" {
		up.Grade = grade
	} else {
		up.Grade = origTchr.Grade
	}

	if up.Classes != nil {
		up.Classes = dedupeClasses(up.Classes)
	}

	return validate.Struct(up)
}

// QueryFilter filters the roster; all fields are combined with AND.
// Search does a case-insensitive substring match on one of
// Teacher.Name, Teacher.Subject or Teacher.Email.
type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}

// dedupeClasses drops duplicate class names, keeping first-seen order.
func dedupeClasses(classes []string) []string {
	if classes == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(classes))
	deduped := make([]string, 0, len(classes))
	for _, class := range classes {
		class = core.CleanString(class)
		if class == "" {
			continue
		}
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		deduped = append(deduped, class)
	}
	return deduped
}
