package domain

import (
	"errors"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

type BookingStatus string

const (
	BookingStatusNew       BookingStatus = "NEW"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ErrSlotTaken is reported when the requested date and slot are already booked.
var ErrSlotTaken = errors.New("slot is already booked")

// Draft is the in-progress, unsubmitted booking form state.
// Date is a calendar date in the business timezone; the zero value means unset.
type Draft struct {
	Name     string
	Phone    string
	Email    string
	Date     time.Time
	Slot     string
	Services []string
}

// HasService reports whether the named service is selected.
func (d Draft) HasService(name string) bool {
	for _, s := range d.Services {
		if s == name {
			return true
		}
	}
	return false
}

// Booking is a submitted booking as persisted by the backend.
type Booking struct {
	ID        int64
	Token     string
	Name      string
	Phone     string
	Email     string
	Date      time.Time
	TimeLabel string
	Services  []string
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
