package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dairystore/internal/domain"
	"dairystore/internal/mocks"
	"dairystore/internal/repository"
	"dairystore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	orderService := services.NewTestOrderService(orderRepo, productRepo, new(mocks.MockSender), nil)
	catalogService := services.NewTestCatalogService(productRepo)

	r := gin.New()
	NewHandler(orderService, catalogService, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestHandler_ExportOrdersCSV(t *testing.T) {
	lat, lng := 18.52, 73.85
	orderRepo := new(mocks.MockOrderRepository)
	orderRepo.On("List", mock.Anything, repository.OrderFilter{}).Return([]domain.Order{{
		ID:               1,
		OrderNumber:      "1000",
		CreatedAt:        time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		CustomerName:     "Asha",
		Email:            "a@x.com",
		Phone:            "9990001111",
		AddressLine1:     "12 MG Road",
		City:             "Pune",
		State:            "MH",
		PostalCode:       "411001",
		Latitude:         &lat,
		Longitude:        &lng,
		PaymentMethod:    domain.PaymentUPI,
		PaymentReference: "TXN123",
		Notes:            "ring the bell",
		TotalAmount:      2747,
	}}, nil)

	r := newTestRouter(orderRepo, new(mocks.MockProductRepository))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=orders.csv", w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body,
		"Order Number,Order ID,Created At,Customer Name,Email,Phone,"+
			"Address Line1,Address Line2,City,State,Postal,"+
			"Latitude,Longitude,Payment Method,Payment Reference,Notes,Total Amount")
	assert.Contains(t, body,
		"1000,1,2026-03-14 09:26:53,Asha,a@x.com,9990001111,12 MG Road,,Pune,MH,411001,18.52,73.85,UPI,TXN123,ring the bell,2747")
}

func TestHandler_ListOrders(t *testing.T) {
	t.Run("applies search and payment filter", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		orderRepo.On("List", mock.Anything, repository.OrderFilter{Query: "Asha", Payment: domain.PaymentCOD}).
			Return([]domain.Order{{OrderNumber: "1000"}}, nil)

		r := newTestRouter(orderRepo, new(mocks.MockProductRepository))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders?q=Asha&payment=cod", nil))

		require.Equal(t, http.StatusOK, w.Code)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown payment filter", func(t *testing.T) {
		r := newTestRouter(new(mocks.MockOrderRepository), new(mocks.MockProductRepository))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders?payment=card", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_DeleteProduct(t *testing.T) {
	t.Run("referenced product returns conflict", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint64(3)).Return(&domain.Product{ID: 3}, nil)
		productRepo.On("Delete", mock.Anything, uint64(3)).Return(repository.ErrProductReferenced)

		r := newTestRouter(new(mocks.MockOrderRepository), productRepo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/products/3", nil))

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "cannot be deleted")
	})

	t.Run("unknown product returns not found", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint64(9)).Return(nil, nil)

		r := newTestRouter(new(mocks.MockOrderRepository), productRepo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/products/9", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
