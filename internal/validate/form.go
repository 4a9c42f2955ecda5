package validate

import (
	"github.com/KiraMuss/AndersonStudio/internal/domain"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
)

// Field keys of the validation result. A key absent from the result means the
// field is valid; an empty result means the draft is submittable.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldServices = "services"
	FieldDate     = "date"
	FieldTime     = "time"
)

// Form runs the full submission check: every field validator plus service
// membership, date/slot presence and the slot's current availability. Always
// a full recompute; the result is never patched incrementally.
func Form(draft domain.Draft, serviceNames map[string]struct{}, availability []domain.SlotAvailability, policy slots.Policy) map[string]string {
	errs := map[string]string{}

	if ok, msg := Name(draft.Name); !ok {
		errs[FieldName] = msg
	}
	if ok, msg := Phone(draft.Phone); !ok {
		errs[FieldPhone] = msg
	}
	if ok, msg := Email(draft.Email); !ok {
		errs[FieldEmail] = msg
	}

	if len(draft.Services) == 0 {
		errs[FieldServices] = "select at least one service"
	} else {
		for _, name := range draft.Services {
			if _, ok := serviceNames[name]; !ok {
				errs[FieldServices] = "unknown service: " + name
				break
			}
		}
	}

	if draft.Date.IsZero() {
		errs[FieldDate] = "select a date"
	}

	if draft.Slot == "" {
		errs[FieldTime] = "select a time"
		return errs
	}

	// The chosen slot must exist in the availability snapshot for the current
	// date and still be free and in the future. Booked state can change between
	// selection and submission, so this re-checks even a previously valid slot.
	found := false
	for _, a := range availability {
		if a.Slot.Label != draft.Slot {
			continue
		}
		found = true
		if a.Booked {
			errs[FieldTime] = "the selected time is no longer available"
		} else if a.Past || (!draft.Date.IsZero() && policy.IsPast(draft.Date, a.Slot)) {
			errs[FieldTime] = "the selected time has already passed"
		}
		break
	}
	if !found {
		errs[FieldTime] = "select a time"
	}

	return errs
}
