package domain

// Slot is a fixed-duration bookable interval within business hours.
// Identity is the start time; Label is the stable identifier used on the wire
// and in the UI ("HH:MM - HH:MM").
type Slot struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	Label       string
}

// StartMinutes returns the slot start as minutes from midnight.
func (s Slot) StartMinutes() int {
	return s.StartHour*60 + s.StartMinute
}

// SlotAvailability pairs a catalog slot with its state for a concrete date.
// Never persisted; recomputed whenever the date or booked set changes.
type SlotAvailability struct {
	Slot   Slot
	Booked bool
	Past   bool
}

// Selectable reports whether the slot can still be chosen.
func (a SlotAvailability) Selectable() bool {
	return !a.Booked && !a.Past
}
