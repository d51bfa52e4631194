package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

const (
	cacheKeyList         = "list"
	cacheKeySearchPrefix = "search:"
)

// SweetService is the single owner of catalog mutations. Every stock change
// goes through it, and every operation consults the authorization table
// before touching the repository.
type SweetService struct {
	repo   ports.SweetRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

// NewSweetService builds a SweetService. Cache may be nil, in which case
// all reads go straight to the repository.
func NewSweetService(repo ports.SweetRepository, cache ports.CatalogCache, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, logger: logger}
}

// Create inserts a new catalog record. Field validation happens at the HTTP
// boundary; the engine stores what it is given.
func (s *SweetService) Create(ctx context.Context, actor *domain.Identity, input ports.SweetInput) (*domain.Sweet, error) {
	if err := domain.Authorize(actor, domain.ActionCreate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, sweet)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create sweet")
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

func (s *SweetService) List(ctx context.Context, actor *domain.Identity) ([]domain.Sweet, error) {
	if err := domain.Authorize(actor, domain.ActionList); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if sweets, ok := s.cache.Get(ctx, cacheKeyList); ok {
			return sweets, nil
		}
	}

	sweets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyList, sweets)
	}
	return sweets, nil
}

// Search matches query as a case-insensitive substring of name or category.
func (s *SweetService) Search(ctx context.Context, actor *domain.Identity, query string) ([]domain.Sweet, error) {
	if err := domain.Authorize(actor, domain.ActionSearch); err != nil {
		return nil, err
	}

	key := cacheKeySearchPrefix + strings.ToLower(query)
	if s.cache != nil {
		if sweets, ok := s.cache.Get(ctx, key); ok {
			return sweets, nil
		}
	}

	sweets, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, sweets)
	}
	return sweets, nil
}

// Update replaces all four fields wholesale; there is no partial patch.
func (s *SweetService) Update(ctx context.Context, actor *domain.Identity, id string, input ports.SweetInput) (*domain.Sweet, error) {
	if err := domain.Authorize(actor, domain.ActionUpdate); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// Purchase decrements stock by exactly one unit. The repository applies the
// decrement with a quantity > 0 guard in a single atomic update, so a sweet
// at zero yields domain.ErrOutOfStock with no mutation and concurrent
// purchases of the last unit produce exactly one winner.
func (s *SweetService) Purchase(ctx context.Context, actor *domain.Identity, id string) (*ports.PurchaseResult, error) {
	if err := domain.Authorize(actor, domain.ActionPurchase); err != nil {
		return nil, err
	}

	remaining, err := s.repo.DecrementQuantity(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Str("buyer", actor.Email).Int64("remaining", remaining).Msg("sweet purchased")
	return &ports.PurchaseResult{RemainingQuantity: remaining}, nil
}

// Restock increments stock by amount. Admin only; amount must be positive.
func (s *SweetService) Restock(ctx context.Context, actor *domain.Identity, id string, amount int64) (*ports.RestockResult, error) {
	if err := domain.Authorize(actor, domain.ActionRestock); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	quantity, err := s.repo.IncrementQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Int64("amount", amount).Int64("quantity", quantity).Msg("sweet restocked")
	return &ports.RestockResult{NewQuantity: quantity}, nil
}

// Delete removes the record. Admin only.
func (s *SweetService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if err := domain.Authorize(actor, domain.ActionDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Str("actor", actor.Email).Msg("sweet deleted")
	return nil
}

func (s *SweetService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
