package places

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/repository"
)

type PlaceUseCase interface {
	Create(ctx context.Context, ownerID string, fields domain.PlaceFields) (*domain.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error)
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	Update(ctx context.Context, id, requesterID string, fields domain.PlaceFields) error
	List(ctx context.Context) ([]domain.Place, error)
}

// PlaceCache hands out a generation with every read; SetPlaces drops the write
// when an invalidation bumped it in between.
type PlaceCache interface {
	GetPlaces(ctx context.Context) ([]domain.Place, int64, error)
	SetPlaces(ctx context.Context, generation int64, places []domain.Place) error
	InvalidatePlaces(ctx context.Context) error
}

type PlaceService struct {
	repo  repository.PlaceRepository
	users repository.UserRepository
	cache PlaceCache
	log   *slog.Logger
}

// NewPlaceService accepts a nil cache.
func NewPlaceService(repo repository.PlaceRepository, users repository.UserRepository, cache PlaceCache) *PlaceService {
	return &PlaceService{
		repo:  repo,
		users: users,
		cache: cache,
		log:   slog.Default().With("module", "places"),
	}
}

func (s *PlaceService) Create(ctx context.Context, ownerID string, fields domain.PlaceFields) (*domain.Place, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	// a signed token can outlive its user
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}

	place := &domain.Place{OwnerID: ownerID}
	place.Apply(fields)
	if err := s.repo.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("create place: %w", err)
	}
	s.invalidate(ctx)
	return place, nil
}

func (s *PlaceService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *PlaceService) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	return s.repo.GetByID(ctx, id)
}

// Update has no concurrency control: the last writer wins.
func (s *PlaceService) Update(ctx context.Context, id, requesterID string, fields domain.PlaceFields) error {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !place.OwnedBy(requesterID) {
		return domain.ErrForbidden
	}

	place.Apply(fields)
	if err := s.repo.Update(ctx, place); err != nil {
		return fmt.Errorf("update place %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *PlaceService) List(ctx context.Context) ([]domain.Place, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		cached, gen, err := s.cache.GetPlaces(ctx)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "places cache read failed", "error", err)
		case cached != nil:
			return cached, nil
		default:
			generation, cacheable = gen, true
		}
	}

	places, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.SetPlaces(ctx, generation, places); err != nil {
			s.log.WarnContext(ctx, "places cache write failed", "error", err)
		}
	}
	return places, nil
}

func (s *PlaceService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePlaces(ctx); err != nil {
		s.log.WarnContext(ctx, "places cache invalidation failed", "error", err)
	}
}

var _ PlaceUseCase = (*PlaceService)(nil)
