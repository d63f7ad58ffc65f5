package domain

import "time"

type Booking struct {
	ID             string
	PlaceID        string
	UserID         string
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Name           string
	Phone          string
	Price          float64
	CreatedAt      time.Time

	// Place is set when the booking was read together with its listing.
	Place *Place
}
