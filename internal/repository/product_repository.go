package repository

import (
	"context"
	"errors"

	"dairystore/internal/domain"
)

// ErrProductReferenced rejects deletion of a product that still appears in
// order line items.
var ErrProductReferenced = errors.New("product is referenced by order items")

type ProductRepository interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	// ActiveBySize returns the lowest-ID active product of the given volume.
	ActiveBySize(ctx context.Context, sizeML int64) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, products []domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}
