package form

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
	"github.com/KiraMuss/AndersonStudio/internal/validate"
)

// State of the booking form.
type State string

const (
	StateEditing    State = "EDITING"
	StateReviewing  State = "REVIEWING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

// AvailabilityProvider answers booked-slot queries for a calendar date.
type AvailabilityProvider interface {
	BookedSlots(ctx context.Context, date time.Time) ([]string, error)
}

// Submitter accepts a finished draft.
type Submitter interface {
	Submit(ctx context.Context, draft domain.Draft) error
}

// ErrSlotConflict is returned by Confirm when the chosen slot was booked by
// someone else between review and confirmation.
var ErrSlotConflict = errors.New("the selected time was just booked, please pick another")

// ErrSubmissionInFlight guards against duplicate dispatch of the same draft.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// Form owns the booking draft and the availability snapshot and gates the
// edit -> review -> submit -> result transitions. It is driven from a single
// execution context; staleness checks on availability responses stand in for
// cancellation of late fetches.
type Form struct {
	state        State
	draft        domain.Draft
	catalog      []domain.Slot
	serviceNames map[string]struct{}
	policy       slots.Policy
	provider     AvailabilityProvider
	submitter    Submitter

	availability    []domain.SlotAvailability
	availabilityFor time.Time

	errors map[string]string
}

// New creates a form in Editing state with an empty draft dated today in the
// business timezone.
func New(catalog []domain.Slot, serviceNames map[string]struct{}, policy slots.Policy, provider AvailabilityProvider, submitter Submitter) *Form {
	f := &Form{
		state:        StateEditing,
		catalog:      catalog,
		serviceNames: serviceNames,
		policy:       policy,
		provider:     provider,
		submitter:    submitter,
	}
	f.draft = f.freshDraft()
	return f
}

func (f *Form) freshDraft() domain.Draft {
	return domain.Draft{Date: f.policy.Today()}
}

func (f *Form) State() State { return f.state }

func (f *Form) Draft() domain.Draft { return f.draft }

// Errors returns the validation result of the last RequestReview.
func (f *Form) Errors() map[string]string { return f.errors }

// Availability returns the current snapshot and the date it was computed for.
func (f *Form) Availability() ([]domain.SlotAvailability, time.Time) {
	return f.availability, f.availabilityFor
}

// SetName updates the customer name. Editing state only.
func (f *Form) SetName(name string) {
	if f.state != StateEditing {
		return
	}
	f.draft.Name = name
}

// SetPhone updates the phone number. Editing state only.
func (f *Form) SetPhone(phone string) {
	if f.state != StateEditing {
		return
	}
	f.draft.Phone = phone
}

// SetEmail updates the optional email. Editing state only.
func (f *Form) SetEmail(email string) {
	if f.state != StateEditing {
		return
	}
	f.draft.Email = email
}

// SetDate changes the candidate date. Availability is date-scoped, so the
// chosen slot is cleared and a refresh is issued for the new date.
func (f *Form) SetDate(ctx context.Context, date time.Time) {
	if f.state != StateEditing {
		return
	}
	if domain.SameDate(f.draft.Date, date) {
		return
	}
	f.draft.Date = date
	f.draft.Slot = ""
	f.RefreshAvailability(ctx)
}

// ToggleService adds or removes one service from the selection. When the
// selection transitions to empty, the date resets to today and any slot choice
// is discarded: the slot grid is only meaningful with a service chosen. When
// it transitions from empty to non-empty, availability is refreshed.
func (f *Form) ToggleService(ctx context.Context, name string) {
	if f.state != StateEditing {
		return
	}
	wasEmpty := len(f.draft.Services) == 0

	if f.draft.HasService(name) {
		kept := f.draft.Services[:0]
		for _, s := range f.draft.Services {
			if s != name {
				kept = append(kept, s)
			}
		}
		f.draft.Services = kept
	} else {
		f.draft.Services = append(f.draft.Services, name)
	}

	switch {
	case len(f.draft.Services) == 0:
		f.draft.Date = f.policy.Today()
		f.draft.Slot = ""
		f.availability = nil
		f.availabilityFor = time.Time{}
	case wasEmpty:
		f.RefreshAvailability(ctx)
	}
}

// RefreshAvailability fetches the booked-slot list for the current date and
// recomputes the snapshot. A failed fetch is treated as "no known bookings"
// (fail-open) and logged; blocking the visitor on a flaky query loses more
// bookings than the occasional conflict at confirm time.
func (f *Form) RefreshAvailability(ctx context.Context) {
	issuedFor := f.draft.Date
	if issuedFor.IsZero() {
		f.availability = nil
		f.availabilityFor = time.Time{}
		return
	}

	booked, err := f.provider.BookedSlots(ctx, issuedFor)
	if err != nil {
		log.Printf("availability fetch for %s failed, assuming free: %v", issuedFor.Format(domain.DateLayout), err)
		booked = nil
	}
	f.ApplyAvailability(issuedFor, booked)
}

// ApplyAvailability installs a booked-slot response. The response is keyed by
// the date it was issued for and dropped when the draft has since moved to a
// different date, so a late response can never overwrite a newer selection.
// Returns whether the response was applied.
func (f *Form) ApplyAvailability(issuedFor time.Time, booked []string) bool {
	if f.draft.Date.IsZero() || !domain.SameDate(issuedFor, f.draft.Date) {
		return false
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, label := range booked {
		bookedSet[label] = struct{}{}
	}

	snapshot := make([]domain.SlotAvailability, 0, len(f.catalog))
	for _, slot := range f.catalog {
		_, isBooked := bookedSet[slot.Label]
		snapshot = append(snapshot, domain.SlotAvailability{
			Slot:   slot,
			Booked: isBooked,
			Past:   f.policy.IsPast(issuedFor, slot),
		})
	}
	f.availability = snapshot
	f.availabilityFor = issuedFor
	return true
}

// SelectSlot chooses a slot by label. Selecting a booked or past slot is a
// no-op and the draft keeps its previous slot. Returns whether the selection
// was accepted.
func (f *Form) SelectSlot(label string) bool {
	if f.state != StateEditing {
		return false
	}
	for _, a := range f.availability {
		if a.Slot.Label == label {
			if !a.Selectable() {
				return false
			}
			f.draft.Slot = label
			return true
		}
	}
	return false
}

// RequestReview runs full validation and moves to Reviewing when the draft is
// submittable. On any error the form stays in Editing and the error mapping is
// surfaced via Errors.
func (f *Form) RequestReview() bool {
	if f.state != StateEditing {
		return false
	}
	errs := validate.Form(f.draft, f.serviceNames, f.availability, f.policy)
	if len(errs) > 0 {
		f.errors = errs
		return false
	}
	f.errors = nil
	f.state = StateReviewing
	return true
}

// CancelReview returns to Editing with the draft untouched.
func (f *Form) CancelReview() {
	if f.state != StateReviewing {
		return
	}
	f.state = StateEditing
}

// Confirm dispatches the reviewed draft. Before dispatch the chosen slot is
// re-checked against the latest availability snapshot; another visitor may
// have taken it between review and confirm. On success the draft is replaced
// with a fresh one; on failure it is preserved for retry. The caller returns
// the form to Editing via Acknowledge after showing the outcome.
func (f *Form) Confirm(ctx context.Context) error {
	switch f.state {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateReviewing:
	default:
		return fmt.Errorf("confirm is only valid while reviewing, state is %s", f.state)
	}

	for _, a := range f.availability {
		if a.Slot.Label == f.draft.Slot && a.Booked {
			f.state = StateEditing
			return ErrSlotConflict
		}
	}

	f.state = StateSubmitting
	if err := f.submitter.Submit(ctx, f.draft); err != nil {
		f.state = StateFailed
		return fmt.Errorf("submit booking: %w", err)
	}

	f.state = StateSucceeded
	f.draft = f.freshDraft()
	f.availability = nil
	f.availabilityFor = time.Time{}
	return nil
}

// Acknowledge returns the form to Editing after a Succeeded or Failed outcome
// has been displayed. The success-display delay is the caller's timer.
func (f *Form) Acknowledge() {
	if f.state == StateSucceeded || f.state == StateFailed {
		f.state = StateEditing
	}
}
