package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dairystore/internal/domain"
	"dairystore/internal/mocks"
	"dairystore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository, sender *mocks.MockSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	orderService := services.NewTestOrderService(orderRepo, productRepo, sender, nil)
	catalogService := services.NewTestCatalogService(productRepo)

	r := gin.New()
	NewHandler(orderService, catalogService, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestHandler_CheckStatus(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepository)
	orderRepo.On("FindByNumber", mock.Anything, "1000").Return(&domain.Order{
		OrderNumber:   "1000",
		CustomerName:  "Asha",
		PaymentMethod: domain.PaymentCOD,
		TotalAmount:   2747,
		Items: []domain.OrderItem{
			{Product: domain.Product{Name: "Gir Cow Ghee 1L"}, Quantity: 2, UnitPrice: 1199},
		},
	}, nil)
	orderRepo.On("FindByNumber", mock.Anything, "9999").Return(nil, nil)

	r := newTestRouter(orderRepo, new(mocks.MockProductRepository), new(mocks.MockSender))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check-status/1000", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_id":"1000"`)
	assert.Contains(t, w.Body.String(), `"product":"Gir Cow Ghee 1L"`)
	assert.Contains(t, w.Body.String(), `"status":"Processing"`)
	assert.Contains(t, w.Body.String(), `"payment_method":"Cash on Delivery"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check-status/9999", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}

func quickOrderValues() url.Values {
	return url.Values{
		"name":        {"Asha"},
		"email":       {"a@x.com"},
		"phone":       {"9990001111"},
		"address":     {"12 MG Road"},
		"city":        {"Pune"},
		"state":       {"MH"},
		"postal_code": {"411001"},
		"payment":     {"cod"},
	}
}

func postForm(r *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_SubmitOrder(t *testing.T) {
	t.Run("redirects home on missing fields", func(t *testing.T) {
		r := newTestRouter(new(mocks.MockOrderRepository), new(mocks.MockProductRepository), new(mocks.MockSender))

		values := quickOrderValues()
		values.Del("phone")
		w := postForm(r, "/submit-order/", values)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("places the fixed 250ml order and redirects to confirmation", func(t *testing.T) {
		orderRepo := new(mocks.MockOrderRepository)
		productRepo := new(mocks.MockProductRepository)
		sender := new(mocks.MockSender)

		productRepo.On("ActiveBySize", mock.Anything, int64(250)).
			Return(&domain.Product{ID: 3, Name: "Gir Cow Ghee 250ml", SizeML: 250, Price: 349, IsActive: true}, nil)
		orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(nil).Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.ID = 1
			order.OrderNumber = "1000"
		})
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		r := newTestRouter(orderRepo, productRepo, sender)
		w := postForm(r, "/submit-order/", quickOrderValues())

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/order/success/?order_id=1000", w.Header().Get("Location"))
		orderRepo.AssertExpectations(t)
	})
}
