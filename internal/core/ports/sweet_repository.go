package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// SweetRepository defines persistence operations for catalog records.
//
// DecrementQuantity and IncrementQuantity must each execute as one atomic
// read-modify-write against the store: the decrement applies only while
// quantity > 0 and returns domain.ErrOutOfStock when the guard fails, so
// two concurrent purchases of a single remaining unit cannot both succeed
// and stored quantity can never go negative.
type SweetRepository interface {
	Insert(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	List(ctx context.Context) ([]domain.Sweet, error)
	// Search returns sweets whose name or category contains query,
	// case-insensitively.
	Search(ctx context.Context, query string) ([]domain.Sweet, error)
	// Replace overwrites all four mutable fields wholesale and returns the
	// updated record.
	Replace(ctx context.Context, id string, s *domain.Sweet) (*domain.Sweet, error)
	DecrementQuantity(ctx context.Context, id string) (int64, error)
	IncrementQuantity(ctx context.Context, id string, amount int64) (int64, error)
	Delete(ctx context.Context, id string) error
}
