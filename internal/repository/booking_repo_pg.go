package repository

import (
	"context"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUserWithPlace(ctx context.Context, userID string) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, place_id, user_id, check_in, check_out, number_of_guests, name, phone, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		booking.ID, booking.PlaceID, booking.UserID, booking.CheckIn, booking.CheckOut, booking.NumberOfGuests,
		booking.Name, booking.Phone, booking.Price).
		Scan(&booking.CreatedAt)
}

// ListByUserWithPlace returns the user's bookings with the listing joined in.
// A booking whose listing no longer exists comes back with a nil Place.
func (r *PGBookingRepository) ListByUserWithPlace(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.place_id, b.user_id, b.check_in, b.check_out, b.number_of_guests, b.name, b.phone, b.price, b.created_at,
		COALESCE(p.id, ''), COALESCE(p.owner_id, ''), COALESCE(p.title, ''), COALESCE(p.address, ''), COALESCE(p.photos, '{}'),
		COALESCE(p.description, ''), COALESCE(p.perks, '{}'), COALESCE(p.extra_info, ''), COALESCE(p.check_in, 0), COALESCE(p.check_out, 0),
		COALESCE(p.max_guests, 0), COALESCE(p.price, 0), COALESCE(p.created_at, b.created_at), COALESCE(p.updated_at, b.created_at)
		FROM bookings b LEFT JOIN places p ON p.id = b.place_id
		WHERE b.user_id=$1
		ORDER BY b.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			b domain.Booking
			p domain.Place
		)
		if err := rows.Scan(&b.ID, &b.PlaceID, &b.UserID, &b.CheckIn, &b.CheckOut, &b.NumberOfGuests, &b.Name, &b.Phone, &b.Price, &b.CreatedAt,
			&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.Photos, &p.Description, &p.Perks, &p.ExtraInfo,
			&p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if p.ID != "" {
			b.Place = &p
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
