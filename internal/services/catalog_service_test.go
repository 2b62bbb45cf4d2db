package services

import (
	"context"
	"testing"

	"dairystore/internal/domain"
	"dairystore/internal/mocks"
	"dairystore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_EnsureDefaultCatalog(t *testing.T) {
	t.Run("seeds an empty catalog", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("Count", mock.Anything).Return(int64(0), nil)
		var seeded []domain.Product
		productRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Product")).
			Return(nil).Run(func(args mock.Arguments) {
			seeded = args.Get(1).([]domain.Product)
		})

		service := NewTestCatalogService(productRepo)
		require.NoError(t, service.EnsureDefaultCatalog(context.Background()))

		require.Len(t, seeded, 3)
		assert.Equal(t, "Gir Cow Ghee 1L", seeded[0].Name)
		assert.Equal(t, int64(1199), seeded[0].Price)
		assert.Equal(t, int64(649), seeded[1].Price)
		assert.Equal(t, int64(349), seeded[2].Price)
		for _, p := range seeded {
			assert.True(t, p.IsActive)
		}
		productRepo.AssertExpectations(t)
	})

	t.Run("does nothing when products exist", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("Count", mock.Anything).Return(int64(3), nil)

		service := NewTestCatalogService(productRepo)
		require.NoError(t, service.EnsureDefaultCatalog(context.Background()))

		productRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_ActiveProducts(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	productRepo.On("ListActive", mock.Anything).Return(TestProducts(), nil)

	service := NewTestCatalogService(productRepo)
	products, err := service.ActiveProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, int64(250), products[0].SizeML)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockProductRepository)
		expectedError error
	}{
		{
			name: "deletes an unreferenced product",
			setupMocks: func(productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(3)).
					Return(&domain.Product{ID: 3}, nil)
				productRepo.On("Delete", mock.Anything, uint64(3)).Return(nil)
			},
		},
		{
			name: "referenced product is protected",
			setupMocks: func(productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(3)).
					Return(&domain.Product{ID: 3}, nil)
				productRepo.On("Delete", mock.Anything, uint64(3)).
					Return(repository.ErrProductReferenced)
			},
			expectedError: repository.ErrProductReferenced,
		},
		{
			name: "unknown product",
			setupMocks: func(productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(3)).Return(nil, nil)
			},
			expectedError: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := new(mocks.MockProductRepository)
			tt.setupMocks(productRepo)

			service := NewTestCatalogService(productRepo)
			err := service.DeleteProduct(context.Background(), 3)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}
			productRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	product := &domain.Product{ID: 2, Name: "Gir Cow Ghee 500ml", SizeML: 500, Price: 699, IsActive: true}
	productRepo.On("Update", mock.Anything, product).Return(nil)

	service := NewTestCatalogService(productRepo)
	require.NoError(t, service.UpdateProduct(context.Background(), product))
	productRepo.AssertExpectations(t)
}
