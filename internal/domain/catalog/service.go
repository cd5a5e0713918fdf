package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnavailable is returned when the catalog cannot serve any offers.
var ErrUnavailable = errors.New("catalog: offer catalog unavailable")

// OffersRepository is the persistence contract the service needs.
type OffersRepository interface {
	ListActive(ctx context.Context) ([]Offer, error)
	Upsert(ctx context.Context, offer Offer) error
	Count(ctx context.Context) (int, error)
}

// Service caches active offers in memory and keeps the search index in sync.
// The ranking pipeline reads from the cache so a database hiccup degrades
// recommendations instead of failing analyses.
type Service struct {
	repo   OffersRepository
	search *SearchIndex
	logger *slog.Logger

	cacheMu sync.RWMutex
	cache   []Offer
	byID    map[string]Offer
}

// NewService creates the catalog service with an empty cache; call Refresh
// (or let the first ActiveOffers call do it) to populate.
func NewService(repo OffersRepository, logger *slog.Logger) (*Service, error) {
	search, err := NewSearchIndex()
	if err != nil {
		return nil, err
	}
	return &Service{
		repo:   repo,
		search: search,
		logger: logger,
		byID:   make(map[string]Offer),
	}, nil
}

// ActiveOffers returns the cached offers, loading from the repository when
// the cache is empty.
func (s *Service) ActiveOffers(ctx context.Context) ([]Offer, error) {
	s.cacheMu.RLock()
	cached := s.cache
	s.cacheMu.RUnlock()

	if len(cached) > 0 {
		return cached, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return s.cache, nil
}

// Refresh reloads the cache from the repository and rebuilds the search index.
func (s *Service) Refresh(ctx context.Context) error {
	offers, err := s.repo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	byID := make(map[string]Offer, len(offers))
	for _, offer := range offers {
		byID[offer.ID] = offer
	}

	s.cacheMu.Lock()
	s.cache = offers
	s.byID = byID
	s.cacheMu.Unlock()

	if err := s.search.Rebuild(offers); err != nil {
		// Search degrades independently of ranking.
		s.logger.Warn("offer search index rebuild failed", slog.Any("error", err))
	}

	s.logger.Info("offer catalog cache refreshed", slog.Int("offers", len(offers)))
	return nil
}

// Search finds offers by name or issuer text.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Offer, error) {
	if _, err := s.ActiveOffers(ctx); err != nil {
		return nil, err
	}

	ids, err := s.search.Search(query, limit)
	if err != nil {
		return nil, err
	}

	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	offers := make([]Offer, 0, len(ids))
	for _, id := range ids {
		if offer, ok := s.byID[id]; ok {
			offers = append(offers, offer)
		}
	}
	return offers, nil
}

// SeedIfEmpty loads generated fixture offers when the catalog table is empty.
// Intended for development environments only.
func (s *Service) SeedIfEmpty(ctx context.Context, count int) error {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	s.logger.Info("seeding empty offer catalog", slog.Int("offers", count))
	for _, offer := range FakeOffers(count) {
		if err := s.repo.Upsert(ctx, offer); err != nil {
			return err
		}
	}
	return s.Refresh(ctx)
}
