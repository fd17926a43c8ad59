// Package form holds the client-side state of the contact and registration forms:
// the draft, per-field errors, and the submission lifecycle.
package form

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/pkg/logger"
	"alvant-portal/pkg/validation"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Status is where a Session is in its submission lifecycle.
type Status int

const (
	Idle Status = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrUnknownOption  = errors.New("unknown option")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	// ErrInvalidDraft is returned by Submit when client-side validation fails; nothing was sent.
	ErrInvalidDraft = errors.New("draft has invalid fields")
)

// Banner messages.
const (
	MsgFixHighlighted   = "Please correct the highlighted fields"
	MsgFixBelow         = "Please correct the errors below"
	MsgSubmissionFailed = "Submission failed"
	MsgStoreDown        = "Database connection error. Please check if the database is configured and running."
	MsgNetwork          = "Network error: Unable to connect to server. Please check your connection."
	MsgInvalidResponse  = "Invalid response from server"
)

type textField[D any] struct {
	get      func(*D) string
	set      func(*D, string)
	validate func(string) string
}

type setField[D any] struct {
	get      func(*D) []string
	set      func(*D, []string)
	options  []string
	validate func([]string) string
}

// schema describes one form: its fields in display order and how to reset a draft.
type schema[D any] struct {
	name   string
	order  []string
	text   map[string]textField[D]
	sets   map[string]setField[D]
	empty  func() D
	notice string
}

func (sc *schema[D]) clone(d D) D {
	out := d
	for _, f := range sc.sets {
		f.set(&out, slices.Clone(f.get(&d)))
	}
	return out
}

// validate returns the message for one field of d, "" when valid.
func (sc *schema[D]) validate(d *D, name string) (string, bool) {
	if f, ok := sc.text[name]; ok {
		return f.validate(f.get(d)), true
	}
	if f, ok := sc.sets[name]; ok {
		return f.validate(f.get(d)), true
	}
	return "", false
}

// Session is the state of one form. Methods are safe for concurrent use;
// Submit holds no lock while the request is on the wire.
type Session[D any] struct {
	mu     sync.Mutex
	schema *schema[D]
	send   func(context.Context, *D) error

	draft  D
	errors validation.FieldErrors
	status Status
	banner string
	notice string
}

func newSession[D any](sc *schema[D], send func(context.Context, *D) error) *Session[D] {
	return &Session[D]{
		schema: sc,
		send:   send,
		draft:  sc.empty(),
		errors: validation.FieldErrors{},
	}
}

// UpdateField sets a text or single-choice field. A field already showing an error
// is re-validated at once.
func (s *Session[D]) UpdateField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.schema.text[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.set(&s.draft, value)
	s.touched()

	if _, dirty := s.errors[name]; dirty {
		s.errors.Set(name, f.validate(value))
	}
	return nil
}

// ToggleSetMember adds value to a multi-choice field, or removes it when present.
func (s *Session[D]) ToggleSetMember(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.schema.sets[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if !slices.Contains(f.options, value) {
		return fmt.Errorf("%w: %s", ErrUnknownOption, value)
	}

	// always a fresh slice, so a snapshot taken by Submit is never mutated
	current := f.get(&s.draft)
	var next []string
	if i := slices.Index(current, value); i >= 0 {
		next = slices.Delete(slices.Clone(current), i, i+1)
	} else {
		next = append(slices.Clone(current), value)
	}
	f.set(&s.draft, next)
	s.touched()

	if _, dirty := s.errors[name]; dirty {
		s.errors.Set(name, f.validate(next))
	}
	return nil
}

// Blur validates a single field, as when the user leaves it.
func (s *Session[D]) Blur(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.schema.validate(&s.draft, name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	s.errors.Set(name, msg)
	return nil
}

// Submit validates every field and, when all pass, sends the draft once.
// The outcome is reflected in Status, Errors, Banner and Notice; the returned
// error is the cause, for callers that want it.
func (s *Session[D]) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.status == Submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}

	s.status = Validating
	s.banner, s.notice = "", ""

	errs := validation.FieldErrors{}
	for _, name := range s.schema.order {
		msg, _ := s.schema.validate(&s.draft, name)
		errs.Set(name, msg)
	}
	if len(errs) > 0 {
		s.errors = errs
		s.status = Failed
		s.banner = MsgFixHighlighted
		s.mu.Unlock()
		return ErrInvalidDraft
	}

	s.errors = validation.FieldErrors{}
	payload := s.schema.clone(s.draft)
	s.status = Submitting
	s.mu.Unlock()

	err := s.send(ctx, &payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.status = Succeeded
		s.draft = s.schema.empty()
		s.errors = validation.FieldErrors{}
		s.notice = s.schema.notice
		return nil
	}

	s.status = Failed
	s.banner = s.describe(err)
	logger.Log.Error("form submission failed", "form", s.schema.name, "error", err)
	return err
}

// describe turns a submission failure into the banner shown to the user.
// Caller holds mu.
func (s *Session[D]) describe(err error) string {
	var (
		rejection  *api.RejectionError
		storeDown  *api.StorageUnavailableError
		transport  *api.TransportError
		unexpected *api.UnexpectedResponseError
	)
	switch {
	case errors.As(err, &storeDown):
		return MsgStoreDown
	case errors.As(err, &transport):
		return MsgNetwork
	case errors.As(err, &unexpected):
		return MsgInvalidResponse
	case errors.As(err, &rejection):
		if len(rejection.Fields) > 0 {
			s.errors.Merge(rejection.Fields)
			if rejection.Message != "" {
				return rejection.Message
			}
			return MsgFixBelow
		}
		if rejection.Message != "" {
			return rejection.Message
		}
	}
	return MsgSubmissionFailed
}

// touched leaves a finished state on the first edit after it. Caller holds mu.
func (s *Session[D]) touched() {
	switch s.status {
	case Failed:
		s.status = Idle
	case Succeeded:
		s.status = Idle
		s.notice = ""
	}
}

// Draft returns a copy of the current draft.
func (s *Session[D]) Draft() D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schema.clone(s.draft)
}

// Errors returns a copy of the field errors currently shown.
func (s *Session[D]) Errors() validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

func (s *Session[D]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Banner is the form-level error message, empty when there is none.
func (s *Session[D]) Banner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

// Notice is the success message after a submission went through.
func (s *Session[D]) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// CanSubmit is false while a submission is in flight.
func (s *Session[D]) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != Submitting
}

// Fields lists the form's field names in display order.
func (s *Session[D]) Fields() []string {
	return slices.Clone(s.schema.order)
}

// Options returns the allowed values of a multi-choice field.
func (s *Session[D]) Options(name string) ([]string, error) {
	f, ok := s.schema.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return slices.Clone(f.options), nil
}
