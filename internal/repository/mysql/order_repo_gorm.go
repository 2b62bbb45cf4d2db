package mysql

import (
	"context"
	"database/sql"
	"errors"

	"dairystore/internal/domain"
	"dairystore/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Create runs header insert, line-item inserts and order-number assignment in
// one transaction. The number scan takes no lock, so two in-flight
// submissions can pick the same number; the loser fails on the unique index
// at commit and nothing of that order is persisted.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if len(order.Items) == 0 {
		return repository.ErrNoItems
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.OrderNumber == "" {
			max, err := maxNumericOrderNumber(tx)
			if err != nil {
				return err
			}
			order.OrderNumber = domain.NextOrderNumber(max)
		}
		return tx.Create(order).Error
	})
}

// maxNumericOrderNumber scans the highest numeric order number; legacy
// non-numeric values are skipped. Returns 0 when no numeric order exists.
func maxNumericOrderNumber(tx *gorm.DB) (uint64, error) {
	var max sql.NullInt64
	err := tx.Model(&domain.Order{}).
		Where("order_number REGEXP ?", "^[0-9]+$").
		Select("MAX(CAST(order_number AS UNSIGNED))").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return uint64(max.Int64), nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items.Product").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items.Product").
		Where("order_number = ?", number).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{}).Preload("Items.Product")
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where(
			"order_number LIKE ? OR customer_name LIKE ? OR phone LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}
	if f.Payment != "" {
		q = q.Where("payment_method = ?", f.Payment)
	}
	var out []domain.Order
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
