package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/KiraMuss/AndersonStudio/internal/kafka"
)

// Sender delivers booking notifications. Delivery is a stub: the event is
// written to stdout in the shape a real mail template would use.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	to := event.Email
	if to == "" {
		// walk-ins without email are notified by phone by the studio
		to = event.Phone
	}
	fmt.Printf("notify %s: booking %s (%s) on %s at %s for %s\n",
		to, event.Token, event.Type, event.Date, event.TimeLabel, strings.Join(event.Services, ", "))
	return nil
}
