package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// SweetInput carries the four caller-supplied fields of a catalog record.
// Used by both create and update; update replaces all fields wholesale,
// never a partial patch.
type SweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// PurchaseResult is returned after a successful single-unit purchase.
type PurchaseResult struct {
	RemainingQuantity int64
}

// RestockResult is returned after a successful restock.
type RestockResult struct {
	NewQuantity int64
}

// SweetService defines the catalog use cases. Actor carries the resolved
// caller identity (nil for anonymous); each operation checks the
// authorization table before touching the store.
type SweetService interface {
	Create(ctx context.Context, actor *domain.Identity, input SweetInput) (*domain.Sweet, error)
	List(ctx context.Context, actor *domain.Identity) ([]domain.Sweet, error)
	Search(ctx context.Context, actor *domain.Identity, query string) ([]domain.Sweet, error)
	Update(ctx context.Context, actor *domain.Identity, id string, input SweetInput) (*domain.Sweet, error)
	Purchase(ctx context.Context, actor *domain.Identity, id string) (*PurchaseResult, error)
	Restock(ctx context.Context, actor *domain.Identity, id string, amount int64) (*RestockResult, error)
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}
