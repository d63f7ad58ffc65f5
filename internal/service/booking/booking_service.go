package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/repository"
)

const EventBookingCreated = "booking_created"

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *slog.Logger
}

// CreateBookingInput carries no user: the owner of a booking is always the caller.
type CreateBookingInput struct {
	PlaceID        string    `json:"place"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Price          float64   `json:"price"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// NewBookingService accepts a nil producer, in which case no events are sent.
func NewBookingService(
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          slog.Default().With("module", "booking"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking does not check the listing's calendar; overlapping stays are accepted.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	booking := &domain.Booking{
		PlaceID:        input.PlaceID,
		UserID:         userID,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		NumberOfGuests: input.NumberOfGuests,
		Name:           input.Name,
		Phone:          input.Phone,
		Price:          input.Price,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.publish(ctx, EventBookingCreated, booking); err != nil {
		s.log.WarnContext(ctx, "failed to publish booking event",
			"event", EventBookingCreated, "booking_id", booking.ID, "error", err)
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.bookings.ListByUserWithPlace(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID,
		PlaceID:        booking.PlaceID,
		UserID:         booking.UserID,
		Name:           booking.Name,
		Phone:          booking.Phone,
		CheckIn:        booking.CheckIn,
		CheckOut:       booking.CheckOut,
		NumberOfGuests: booking.NumberOfGuests,
		Price:          booking.Price,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
