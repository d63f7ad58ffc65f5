package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/kafka"
)

type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Message is what would go out over the wire.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender resolves the guest's address and writes the notification to the log.
type Sender struct {
	users UserLookup
	log   *slog.Logger
	sent  func(Message)
}

func NewSender(users UserLookup) *Sender {
	return &Sender{users: users, log: slog.Default().With("module", "email")}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	user, err := s.users.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", event.UserID, err)
	}

	msg := compose(user, event)
	s.log.InfoContext(ctx, "send email", "to", msg.To, "subject", msg.Subject, "booking_id", event.BookingID)
	if s.sent != nil {
		s.sent(msg)
	}
	return nil
}

func compose(user *domain.User, event kafka.BookingEvent) Message {
	subject := "Booking update"
	if event.Type == "booking_created" {
		subject = "Your booking is confirmed"
	}
	body := fmt.Sprintf("Hi %s,\n\nbooking %s for %d guest(s) from %s to %s, total %.2f.\nContact: %s %s\n",
		user.Name, event.BookingID, event.NumberOfGuests,
		event.CheckIn.Format("2006-01-02"), event.CheckOut.Format("2006-01-02"),
		event.Price, event.Name, event.Phone)
	return Message{To: user.Email, Subject: subject, Body: body}
}
