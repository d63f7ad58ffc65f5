package repository

import (
	"context"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	Update(ctx context.Context, place *domain.Place) error
}

type PGPlaceRepository struct {
	db DB
}

func NewPlaceRepository(db DB) PlaceRepository {
	return &PGPlaceRepository{db: db}
}

const placeColumns = `id, owner_id, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price, created_at, updated_at`

func (r *PGPlaceRepository) Create(ctx context.Context, place *domain.Place) error {
	if place.ID == "" {
		place.ID = uuid.NewString()
	}
	normalizeSlices(place)
	return r.db.QueryRow(ctx, `INSERT INTO places (id, owner_id, title, address, photos, description, perks, extra_info, check_in, check_out, max_guests, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		place.ID, place.OwnerID, place.Title, place.Address, place.Photos, place.Description, place.Perks,
		place.ExtraInfo, place.CheckIn, place.CheckOut, place.MaxGuests, place.Price).
		Scan(&place.CreatedAt, &place.UpdatedAt)
}

func (r *PGPlaceRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	row := r.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id=$1`, id)
	p, err := scanPlace(row)
	if err != nil {
		return nil, notFound(err, domain.ErrPlaceNotFound)
	}
	return p, nil
}

func (r *PGPlaceRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error) {
	return r.list(ctx, `SELECT `+placeColumns+` FROM places WHERE owner_id=$1 ORDER BY created_at`, ownerID)
}

func (r *PGPlaceRepository) List(ctx context.Context) ([]domain.Place, error) {
	return r.list(ctx, `SELECT `+placeColumns+` FROM places ORDER BY created_at`)
}

func (r *PGPlaceRepository) Update(ctx context.Context, place *domain.Place) error {
	normalizeSlices(place)
	err := r.db.QueryRow(ctx, `UPDATE places SET title=$2, address=$3, photos=$4, description=$5, perks=$6, extra_info=$7,
		check_in=$8, check_out=$9, max_guests=$10, price=$11, updated_at=now()
		WHERE id=$1 RETURNING updated_at`,
		place.ID, place.Title, place.Address, place.Photos, place.Description, place.Perks, place.ExtraInfo,
		place.CheckIn, place.CheckOut, place.MaxGuests, place.Price).
		Scan(&place.UpdatedAt)
	return notFound(err, domain.ErrPlaceNotFound)
}

func (r *PGPlaceRepository) list(ctx context.Context, query string, args ...any) ([]domain.Place, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := make([]domain.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *p)
	}
	return places, rows.Err()
}

func scanPlace(row pgx.Row) (*domain.Place, error) {
	var p domain.Place
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.Photos, &p.Description, &p.Perks, &p.ExtraInfo,
		&p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// text[] columns are NOT NULL.
func normalizeSlices(p *domain.Place) {
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if p.Perks == nil {
		p.Perks = []string{}
	}
}

var _ PlaceRepository = (*PGPlaceRepository)(nil)
