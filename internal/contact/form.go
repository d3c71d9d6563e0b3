// Package contact implements the contact form: field state, validation and
// delivery through a transactional email sender.
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrSubmitting   = errors.New("a submission is already in flight")
	ErrInvalid      = errors.New("invalid submission")
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const SuccessMessage = "Thank you for your message! I'll get back to you within 24 hours."

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Submission is the validated payload handed to a Sender.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Sender delivers a submission to the site owner.
type Sender interface {
	Send(ctx context.Context, s Submission) error
	Name() string
}

// Form is the contact form controller for one visitor.
type Form struct {
	sender   Sender
	fallback string
	timeout  time.Duration

	mu      sync.Mutex
	name    string
	email   string
	message string
	focused string
	status  Status
	notice  string
	field   string
}

// State is a snapshot of the form for rendering.
type State struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	Focused    string `json:"focused,omitempty"`
	Status     Status `json:"status"`
	Notice     string `json:"notice,omitempty"`
	ErrorField string `json:"error_field,omitempty"`
}

func (s State) Submitting() bool { return s.Status == StatusSubmitting }

// NewForm returns an idle form. fallbackEmail is quoted to the visitor
// whenever delivery fails. A zero timeout disables the send deadline.
func NewForm(sender Sender, fallbackEmail string, timeout time.Duration) *Form {
	return &Form{sender: sender, fallback: fallbackEmail, timeout: timeout, status: StatusIdle}
}

// UpdateField stores value without validating it.
func (f *Form) UpdateField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.name = value
	case FieldEmail:
		f.email = value
	case FieldMessage:
		f.message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (f *Form) Focus(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = field
}

func (f *Form) Blur() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = ""
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Form) stateLocked() State {
	return State{
		Name:       f.name,
		Email:      f.email,
		Message:    f.message,
		Focused:    f.focused,
		Status:     f.status,
		Notice:     f.notice,
		ErrorField: f.field,
	}
}

// Validate checks a submission without side effects.
func Validate(s Submission) error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: FieldName, Message: "Please fill in all fields"}
	}
	if strings.TrimSpace(s.Email) == "" {
		return &ValidationError{Field: FieldEmail, Message: "Please fill in all fields"}
	}
	if strings.TrimSpace(s.Message) == "" {
		return &ValidationError{Field: FieldMessage, Message: "Please fill in all fields"}
	}
	if !emailRx.MatchString(strings.TrimSpace(s.Email)) {
		return &ValidationError{Field: FieldEmail, Message: "Please enter a valid email address"}
	}
	return nil
}

// Submit validates the current fields and delivers them. Validation
// failures never reach the sender. Delivery failures keep the fields so the
// visitor can retry and point them at the fallback address. The returned
// State is the form after the attempt; the error is nil unless a second
// submission overlapped the first.
func (f *Form) Submit(ctx context.Context) (State, error) {
	return f.submit(ctx, nil)
}

// SubmitWith replaces all three fields and submits them in one step. While
// another submission is in flight the fields are left untouched.
func (f *Form) SubmitWith(ctx context.Context, sub Submission) (State, error) {
	return f.submit(ctx, &sub)
}

func (f *Form) submit(ctx context.Context, fields *Submission) (State, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		st := f.stateLocked()
		f.mu.Unlock()
		return st, ErrSubmitting
	}
	if fields != nil {
		f.name, f.email, f.message = fields.Name, fields.Email, fields.Message
	}
	sub := Submission{
		Name:    strings.TrimSpace(f.name),
		Email:   strings.TrimSpace(f.email),
		Message: strings.TrimSpace(f.message),
	}
	if err := Validate(sub); err != nil {
		var ve *ValidationError
		errors.As(err, &ve)
		f.status, f.notice, f.field = StatusError, ve.Message, ve.Field
		submissionsTotal.WithLabelValues("invalid").Inc()
		st := f.stateLocked()
		f.mu.Unlock()
		return st, nil
	}
	f.status, f.notice, f.field = StatusSubmitting, "", ""
	f.mu.Unlock()

	sendCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	err := f.sender.Send(sendCtx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Str("sender", f.sender.Name()).Msg("contact delivery failed")
		f.status = StatusError
		f.notice = fmt.Sprintf("Unable to send message automatically. Please contact me directly at %s", f.fallback)
		submissionsTotal.WithLabelValues("failed").Inc()
		return f.stateLocked(), nil
	}

	log.Info().Str("sender", f.sender.Name()).Msg("contact message delivered")
	f.name, f.email, f.message = "", "", ""
	f.status, f.notice = StatusSuccess, SuccessMessage
	submissionsTotal.WithLabelValues("sent").Inc()
	return f.stateLocked(), nil
}
