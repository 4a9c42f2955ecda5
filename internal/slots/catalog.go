package slots

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

// HourMinute is a wall-clock instant within a day.
type HourMinute struct {
	Hour   int
	Minute int
}

// Minutes returns the instant as minutes from midnight.
func (h HourMinute) Minutes() int {
	return h.Hour*60 + h.Minute
}

// ParseHourMinute parses "HH:MM".
func ParseHourMinute(s string) (HourMinute, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return HourMinute{}, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return HourMinute{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return HourMinute{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return HourMinute{}, fmt.Errorf("time %q out of range", s)
	}
	return HourMinute{Hour: hour, Minute: minute}, nil
}

// Window is the business-hours window slots are generated from.
type Window struct {
	Open        HourMinute
	Close       HourMinute
	SlotMinutes int
}

// DefaultWindow is the salon's opening hours: 08:00-20:15, half-hour slots.
// The trailing 15 minutes cannot fit a full slot and is never offered.
var DefaultWindow = Window{
	Open:        HourMinute{Hour: 8},
	Close:       HourMinute{Hour: 20, Minute: 15},
	SlotMinutes: 30,
}

// Generate produces the ordered catalog of bookable slots. A slot is emitted
// only if its full duration fits before closing. Pure: no dependency on the
// current date or time.
func (w Window) Generate() []domain.Slot {
	if w.SlotMinutes <= 0 {
		return nil
	}

	var catalog []domain.Slot
	for start := w.Open.Minutes(); start+w.SlotMinutes <= w.Close.Minutes(); start += w.SlotMinutes {
		end := start + w.SlotMinutes
		slot := domain.Slot{
			StartHour:   start / 60,
			StartMinute: start % 60,
			EndHour:     end / 60,
			EndMinute:   end % 60,
		}
		slot.Label = fmt.Sprintf("%02d:%02d - %02d:%02d", slot.StartHour, slot.StartMinute, slot.EndHour, slot.EndMinute)
		catalog = append(catalog, slot)
	}
	return catalog
}

// Find returns the catalog slot with the given label.
func Find(catalog []domain.Slot, label string) (domain.Slot, bool) {
	for _, s := range catalog {
		if s.Label == label {
			return s, true
		}
	}
	return domain.Slot{}, false
}
