package slots

import (
	"time"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

// Policy decides whether a slot on a date is already in the past, relative to
// the business timezone. Both the candidate instant and "now" are evaluated in
// Location so a visitor's local clock never leaks into the comparison. Now is
// injectable so tests can pin the clock.
type Policy struct {
	Location *time.Location
	Now      func() time.Time
}

func NewPolicy(loc *time.Location) Policy {
	return Policy{Location: loc, Now: time.Now}
}

func (p Policy) now() time.Time {
	if p.Now != nil {
		return p.Now().In(p.Location)
	}
	return time.Now().In(p.Location)
}

// IsPast reports whether the slot's start on the given calendar date is
// strictly before now. A slot starting exactly now is not past.
func (p Policy) IsPast(date time.Time, slot domain.Slot) bool {
	start := time.Date(date.Year(), date.Month(), date.Day(), slot.StartHour, slot.StartMinute, 0, 0, p.Location)
	return start.Before(p.now())
}

// Today returns the current calendar date in the business timezone.
func (p Policy) Today() time.Time {
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.Location)
}

// Date builds a calendar date in the business timezone.
func (p Policy) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, p.Location)
}

// ParseDate parses a wire-format date in the business timezone.
func (p Policy) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, p.Location)
}
