package repository

import (
	"context"
	"errors"

	"dairystore/internal/domain"
)

// ErrNoItems aborts order creation when no line item survived validation;
// the transaction rolls back and no header row is left behind.
var ErrNoItems = errors.New("order has no line items")

// OrderFilter narrows admin listings. Zero values match everything.
type OrderFilter struct {
	Query   string               // matches order number, customer name, phone or email
	Payment domain.PaymentMethod // "" means any payment method
}

type OrderRepository interface {
	// Create persists the header and all line items in one transaction and
	// assigns the order number inside that same transaction.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
}
