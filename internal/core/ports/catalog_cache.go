package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// CatalogCache is a read-through cache for list/search results. It is best
// effort: a miss or a cache error just means the caller falls through to
// the store, so cache failures never affect correctness.
type CatalogCache interface {
	// Get returns the cached result for key and whether it was present.
	Get(ctx context.Context, key string) ([]domain.Sweet, bool)
	Set(ctx context.Context, key string, sweets []domain.Sweet)
	// Invalidate drops all cached catalog results. Called after every
	// catalog mutation.
	Invalidate(ctx context.Context)
}
