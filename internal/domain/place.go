package domain

import "time"

type Place struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extraInfo"`
	CheckIn     int       `json:"checkIn"`
	CheckOut    int       `json:"checkOut"`
	MaxGuests   int       `json:"maxGuests"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaceFields are the owner-editable attributes of a Place.
type PlaceFields struct {
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     int
	CheckOut    int
	MaxGuests   int
	Price       float64
}

// Apply overwrites every mutable attribute of p with f.
func (p *Place) Apply(f PlaceFields) {
	p.Title = f.Title
	p.Address = f.Address
	p.Photos = f.Photos
	p.Description = f.Description
	p.Perks = f.Perks
	p.ExtraInfo = f.ExtraInfo
	p.CheckIn = f.CheckIn
	p.CheckOut = f.CheckOut
	p.MaxGuests = f.MaxGuests
	p.Price = f.Price
}

// OwnedBy reports whether userID is the owner. IDs are opaque strings.
func (p *Place) OwnedBy(userID string) bool {
	return userID != "" && p.OwnerID == userID
}
