package teacher

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("teacher not found")
)

type (
	Repository interface {
		CreateTeacher(tchr Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		// FilterTeachers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of
		// Teacher.Name, Teacher.Subject or Teacher.Email.
		// Results keep the roster's insertion order.
		FilterTeachers(filter QueryFilter) ([]Teacher, error)
		UpdateTeacher(tchr Teacher) (Teacher, error)
		DeleteTeachersByID(ids ...string) error
	}

	ServiceInterface interface {
		Create(nt NewTeacher) (Teacher, error)
		QueryAll() ([]Teacher, error)
		GetByID(id string) (Teacher, error)
		Filter(filter *QueryFilter) ([]Teacher, error)
		Update(id string, up UpdateTeacher) (Teacher, error)
		AddClass(id, class string) (Teacher, error)
		RecordPayment(id string, at time.Time) (Teacher, error)
		Delete(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends a validated candidate to the roster. The caller must
// have validated nt first; no validation is performed here.
func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	status := nt.Status
	if status == "" {
		status = StatusActive
	}
	method := nt.Method
	if method == "" {
		method = MethodBank
	}
	tchr := Teacher{
		Name:       nt.Name,
		Email:      nt.Email,
		Subject:    nt.Subject,
		Grade:      nt.Grade,
		Experience: nt.Experience,
		Status:     status,
		Classes:    nt.Classes,
		Performance: Performance{
			Rating:        nt.Performance.Rating,
			StudentsCount: nt.Performance.StudentsCount,
			Attendance:    nt.Performance.Attendance,
		},
		Payment: PaymentInfo{
			Salary:      nt.Salary,
			Status:      PaymentPending,
			LastPayment: now,
			Method:      method,
			Bonuses:     nt.Bonuses,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateTeacher(tchr)
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) Filter(filter *QueryFilter) ([]Teacher, error) {
	if filter == nil || filter.IsEmpty() {
		return svc.repo.QueryAllTeachers()
	}
	return svc.repo.FilterTeachers(*filter)
}

// Update merges the patch into the existing entity. The payment status
// and last-payment date are never touched here; only RecordPayment
// transitions them.
func (svc *Service) Update(id string, up UpdateTeacher) (Teacher, error) {
	tchr, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}

	tchr.Name = up.Name
	tchr.Email = up.Email
	tchr.Subject = up.Subject
	tchr.Grade = up.Grade
	if up.Experience != nil {
		tchr.Experience = *up.Experience
	}
	if up.Status != "" {
		tchr.Status = up.Status
	}
	if up.Classes != nil {
		tchr.Classes = up.Classes
	}
	if up.Performance.Rating != nil {
		tchr.Performance.Rating = *up.Performance.Rating
	}
	if up.Performance.StudentsCount != nil {
		tchr.Performance.StudentsCount = *up.Performance.StudentsCount
	}
	if up.Performance.Attendance != nil {
		tchr.Performance.Attendance = *up.Performance.Attendance
	}
	if up.Salary != nil {
		tchr.Payment.Salary = *up.Salary
	}
	if up.Method != "" {
		tchr.Payment.Method = up.Method
	}
	if up.Bonuses != nil {
		tchr.Payment.Bonuses = *up.Bonuses
	}
	tchr.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateTeacher(tchr)
}

// AddClass assigns a class to the teacher; adding an existing class
// name is a no-op.
func (svc *Service) AddClass(id, class string) (Teacher, error) {
	tchr, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}
	if tchr.HasClass(class) {
		return tchr, nil
	}
	tchr.Classes = append(tchr.Classes, class)
	tchr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(tchr)
}

// RecordPayment marks the teacher as paid as of `at`. This is the only
// mutation path for the payment status.
func (svc *Service) RecordPayment(id string, at time.Time) (Teacher, error) {
	tchr, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}
	tchr.Payment.Status = PaymentPaid
	tchr.Payment.LastPayment = at.UTC()
	tchr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(tchr)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteTeachersByID(ids...)
}
