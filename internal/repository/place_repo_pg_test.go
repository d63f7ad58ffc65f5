package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeCols = []string{"id", "owner_id", "title", "address", "photos", "description", "perks", "extra_info",
	"check_in", "check_out", "max_guests", "price", "created_at", "updated_at"}

func TestPlaceRepository_Create(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlaceRepository(db)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	db.ExpectQuery(regexp.QuoteMeta(`INSERT INTO places`)).
		WithArgs(pgxmock.AnyArg(), "owner-1", "Cabin", "Lake road 1", []string{}, "cozy", []string{"wifi"},
			"", 14, 11, 4, 120.0).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	place := &domain.Place{OwnerID: "owner-1", Title: "Cabin", Address: "Lake road 1", Description: "cozy",
		Perks: []string{"wifi"}, CheckIn: 14, CheckOut: 11, MaxGuests: 4, Price: 120}
	require.NoError(t, repo.Create(context.Background(), place))

	assert.NotEmpty(t, place.ID)
	assert.Equal(t, []string{}, place.Photos)
	assert.Equal(t, now, place.CreatedAt)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestPlaceRepository_GetByID(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlaceRepository(db)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	db.ExpectQuery(regexp.QuoteMeta(`FROM places WHERE id=$1`)).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow("p1", "owner-1", "Cabin", "Lake road 1", []string{"a.jpg"}, "cozy", []string{"wifi"}, "no pets", 14, 11, 4, 120.0, now, now))

	place, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", place.OwnerID)
	assert.Equal(t, []string{"a.jpg"}, place.Photos)
	assert.Equal(t, "no pets", place.ExtraInfo)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestPlaceRepository_GetByID_NotFound(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlaceRepository(db)

	db.ExpectQuery(regexp.QuoteMeta(`FROM places WHERE id=$1`)).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestPlaceRepository_ListByOwner(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlaceRepository(db)
	now := time.Now().UTC()

	db.ExpectQuery(regexp.QuoteMeta(`FROM places WHERE owner_id=$1`)).
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow("p1", "owner-1", "Cabin", "", []string{}, "", []string{}, "", 0, 0, 2, 50.0, now, now).
			AddRow("p2", "owner-1", "Loft", "", []string{}, "", []string{}, "", 0, 0, 3, 80.0, now, now))

	places, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Loft", places[1].Title)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestPlaceRepository_List_Empty(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlaceRepository(db)

	db.ExpectQuery(regexp.QuoteMeta(`SELECT ` + placeColumns + ` FROM places ORDER BY created_at`)).
		WillReturnRows(pgxmock.NewRows(placeCols))

	places, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, places)
	assert.Empty(t, places)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestPlaceRepository_Update(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlaceRepository(db)
	now := time.Now().UTC()

	db.ExpectQuery(regexp.QuoteMeta(`UPDATE places SET`)).
		WithArgs("p1", "New title", "", []string{}, "", []string{}, "", 0, 0, 2, 99.0).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	place := &domain.Place{ID: "p1", Title: "New title", MaxGuests: 2, Price: 99}
	require.NoError(t, repo.Update(context.Background(), place))
	assert.Equal(t, now, place.UpdatedAt)
	assert.NoError(t, db.ExpectationsWereMet())
}
