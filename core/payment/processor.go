package payment

import (
	"context"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/teacher"
)

var (
	// ErrInFlight rejects a payment for a teacher whose previous
	// payment is still processing.
	ErrInFlight = errors.New("a payment for this teacher is already processing")
)

// Processing states. A payment enters Processing only by explicit user
// action and always terminates in Succeeded or Failed.
const (
	StateProcessing = "processing"
	StateSucceeded  = "succeeded"
	StateFailed     = "failed"
)

var (
	payTypeTag  = "paytype"
	payTypeText = "invalid payment type"
)

// InitValidators registers the payment-specific validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(payTypeTag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		return val == TypeSalary || val == TypeBonus
	})
	core.RegisterCustomTranslation(validate, translator, payTypeTag, payTypeText)
}

type (
	// ProcessRequest is the payment action issued from the payment modal.
	ProcessRequest struct {
		TeacherID string  `json:"teacher_id" validate:"required"`
		Amount    float64 `json:"amount" validate:"required,gt=0"`
		Method    string  `json:"method" validate:"required,paymethod"`
		Type      string  `json:"type" validate:"required,paytype"`
	}

	// Result is delivered on the completion channel once the simulated
	// execution terminates.
	Result struct {
		TeacherID string           `json:"teacher_id"`
		State     string           `json:"state"`
		Amount    float64          `json:"amount"`
		Teacher   *teacher.Teacher `json:"teacher,omitempty"`
		Err       error            `json:"-"`
	}

	// Processor mediates the simulated payment execution: a fixed
	// processing delay, then the paid transition on the roster. A
	// teacher can have at most one payment in flight.
	Processor struct {
		svc   teacher.ServiceInterface
		delay time.Duration
		log   core.Logger

		mu       sync.Mutex
		inFlight map[string]struct{}
	}
)

func (pr *ProcessRequest) Validate(validate *validator.Validate) error {
	pr.TeacherID = core.CleanString(pr.TeacherID)
	pr.Method = core.CleanString(pr.Method, true /* lower */)
	pr.Type = core.CleanString(pr.Type, true /* lower */)
	return validate.Struct(pr)
}

func NewProcessor(svc teacher.ServiceInterface, conf *core.Config, log core.Logger) *Processor {
	return &Processor{
		svc:      svc,
		delay:    conf.Payment.ProcessingDelay,
		log:      log,
		inFlight: make(map[string]struct{}),
	}
}

// InFlight reports whether a payment is currently processing for the teacher.
func (p *Processor) InFlight(teacherID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, busy := p.inFlight[teacherID]
	return busy
}

// Process starts the simulated payment execution and returns a
// completion channel immediately. It fails fast with ErrInFlight when
// a payment for the same teacher is still processing (re-entrancy
// guard), and with teacher.ErrNotFound for an unknown teacher. The
// context is the cancellation token: cancelling it fails the payment
// without applying the paid transition.
func (p *Processor) Process(ctx context.Context, req ProcessRequest) (<-chan Result, error) {
	if _, err := p.svc.GetByID(req.TeacherID); err != nil {
		return nil, errors.Wrap(err, "looking up payee")
	}

	p.mu.Lock()
	if _, busy := p.inFlight[req.TeacherID]; busy {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	p.inFlight[req.TeacherID] = struct{}{}
	p.mu.Unlock()

	done := make(chan Result, 1)
	go p.run(ctx, req, done)
	return done, nil
}

func (p *Processor) run(ctx context.Context, req ProcessRequest, done chan<- Result) {
	defer func() {
		p.mu.Lock()
		delete(p.inFlight, req.TeacherID)
		p.mu.Unlock()
	}()

	fail := func(err error) {
		p.log.Error("payment failed", err, map[string]interface{}{"teacher_id": req.TeacherID, "amount": req.Amount})
		done <- Result{TeacherID: req.TeacherID, State: StateFailed, Amount: req.Amount, Err: err}
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		fail(ctx.Err())
		return
	case <-timer.C:
	}

	tchr, err := p.svc.RecordPayment(req.TeacherID, nowFunc().UTC())
	if err != nil {
		fail(errors.Wrap(err, "recording payment"))
		return
	}

	p.log.Info("payment processed", map[string]interface{}{
		"teacher_id": req.TeacherID,
		"amount":     req.Amount,
		"type":       req.Type,
		"method":     req.Method,
	})
	done <- Result{TeacherID: req.TeacherID, State: StateSucceeded, Amount: req.Amount, Teacher: &tchr}
}
