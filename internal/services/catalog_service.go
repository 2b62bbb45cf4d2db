package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dairystore/internal/domain"
	"dairystore/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrProductNotFound = errors.New("product not found")

const (
	catalogCacheKey = "catalog:active"
	catalogCacheTTL = time.Minute
)

type CatalogService struct {
	products    repository.ProductRepository
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
	}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ActiveProducts lists the storefront catalog ordered by volume, through
// redis when a client is configured.
func (s *CatalogService) ActiveProducts(ctx context.Context) ([]domain.Product, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var out []domain.Product
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(out); err == nil {
			s.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}

	return out, nil
}

// AllProducts includes inactive products, for the admin table.
func (s *CatalogService) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) Product(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteProduct removes a product; repository.ErrProductReferenced passes
// through when order items still point at it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, catalogCacheKey)
	}
}

// EnsureDefaultCatalog seeds the three stock products exactly once, on an
// empty catalog. Safe to call at every startup.
func (s *CatalogService) EnsureDefaultCatalog(ctx context.Context) error {
	n, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	seed := defaultCatalog()
	if err := s.products.CreateBatch(ctx, seed); err != nil {
		return err
	}
	s.logger.Info("seeded default catalog", zap.Int("products", len(seed)))
	return nil
}

func defaultCatalog() []domain.Product {
	return []domain.Product{
		{
			Name:        "Gir Cow Ghee 1L",
			SizeML:      1000,
			Price:       1199,
			Description: "Pure A2 Gir Cow Bilona Ghee (1L).",
			ImageURL:    "/static/store/images/product_1l.jpg",
			IsActive:    true,
		},
		{
			Name:        "Gir Cow Ghee 500ml",
			SizeML:      500,
			Price:       649,
			Description: "Pure A2 Gir Cow Bilona Ghee (500ml).",
			ImageURL:    "/static/store/images/product_500ml.jpg",
			IsActive:    true,
		},
		{
			Name:        "Gir Cow Ghee 250ml",
			SizeML:      250,
			Price:       349,
			Description: "Pure A2 Gir Cow Bilona Ghee (250ml).",
			ImageURL:    "/static/store/images/product_250ml.jpg",
			IsActive:    true,
		},
	}
}
