package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dairystore/internal/domain"
	"dairystore/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	orders  *services.OrderService
	catalog *services.CatalogService
	logger  *zap.Logger
}

func NewHandler(orders *services.OrderService, catalog *services.CatalogService, logger *zap.Logger) *Handler {
	return &Handler{orders: orders, catalog: catalog, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/order/", h.OrderForm)
	r.POST("/order/", h.PlaceOrder)
	r.POST("/submit-order/", h.SubmitOrder)
	r.GET("/check-status/:orderNumber", h.CheckStatus)
	r.GET("/order/success/", h.OrderSuccess)
}

func (h *Handler) Home(c *gin.Context) {
	products, err := h.catalog.ActiveProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load catalog", zap.Error(err))
		c.String(http.StatusInternalServerError, "catalog unavailable")
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"products": products})
}

func (h *Handler) OrderForm(c *gin.Context) {
	products, err := h.catalog.ActiveProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load catalog", zap.Error(err))
		c.String(http.StatusInternalServerError, "catalog unavailable")
		return
	}
	c.HTML(http.StatusOK, "order.html", gin.H{
		"products": products,
		"form":     orderForm{PaymentMethod: string(domain.PaymentCOD)},
		"errors":   map[string]string{},
	})
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.catalog.ActiveProducts(ctx)
	if err != nil {
		h.logger.Error("failed to load catalog", zap.Error(err))
		c.String(http.StatusInternalServerError, "catalog unavailable")
		return
	}

	var form orderForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	quantities := make(map[uint64]int64, len(products))
	for _, p := range products {
		raw := strings.TrimSpace(c.PostForm("qty_" + strconv.FormatUint(p.ID, 10)))
		if raw == "" {
			continue
		}
		qty, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		quantities[p.ID] = qty
	}

	in := services.PlaceOrderInput{
		CustomerName:     form.CustomerName,
		Email:            form.Email,
		Phone:            form.Phone,
		AddressLine1:     form.AddressLine1,
		AddressLine2:     form.AddressLine2,
		City:             form.City,
		State:            form.State,
		PostalCode:       form.PostalCode,
		PaymentMethod:    paymentMethod(form.PaymentMethod),
		PaymentReference: form.PaymentReference,
		Notes:            form.Notes,
		Quantities:       quantities,
	}
	if lat, latErr := strconv.ParseFloat(strings.TrimSpace(form.Latitude), 64); latErr == nil {
		if lng, lngErr := strconv.ParseFloat(strings.TrimSpace(form.Longitude), 64); lngErr == nil {
			in.Latitude = &lat
			in.Longitude = &lng
		}
	}

	order, err := h.orders.PlaceOrder(ctx, in)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.HTML(http.StatusOK, "order.html", gin.H{
				"products": products,
				"form":     form,
				"errors":   verr.Fields,
			})
		case errors.Is(err, services.ErrNotifyFailed):
			// The order is committed; only the confirmation failed.
			h.logger.Error("order placed but confirmation failed",
				zap.String("order_number", order.OrderNumber), zap.Error(err))
			c.String(http.StatusInternalServerError,
				"order %s was placed but the confirmation email failed", order.OrderNumber)
		default:
			h.logger.Error("failed to place order", zap.Error(err))
			c.String(http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	c.Redirect(http.StatusFound, "/order/success/?order_id="+order.OrderNumber)
}

func (h *Handler) SubmitOrder(c *gin.Context) {
	var form quickOrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	order, err := h.orders.QuickOrder(c.Request.Context(), services.QuickOrderInput{
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Address:    form.Address,
		City:       form.City,
		State:      form.State,
		PostalCode: form.PostalCode,
		Payment:    form.Payment,
		Notes:      form.Notes,
		Latitude:   form.Latitude,
		Longitude:  form.Longitude,
	})
	if err != nil {
		switch {
		// The quick-order form surfaces no error detail, it just goes home.
		case errors.Is(err, services.ErrQuickOrderInvalid), errors.Is(err, services.ErrProductNotFound):
			c.Redirect(http.StatusFound, "/")
		case errors.Is(err, services.ErrNotifyFailed):
			h.logger.Error("order placed but confirmation failed",
				zap.String("order_number", order.OrderNumber), zap.Error(err))
			c.String(http.StatusInternalServerError,
				"order %s was placed but the confirmation email failed", order.OrderNumber)
		default:
			h.logger.Error("failed to place quick order", zap.Error(err))
			c.String(http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	c.Redirect(http.StatusFound, "/order/success/?order_id="+order.OrderNumber)
}

func (h *Handler) CheckStatus(c *gin.Context) {
	report, err := h.orders.CheckStatus(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.logger.Error("status lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status lookup failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) OrderSuccess(c *gin.Context) {
	order, err := h.orders.FindForConfirmation(c.Request.Context(), c.Query("order_id"))
	if err != nil {
		h.logger.Error("confirmation lookup failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "confirmation unavailable")
		return
	}
	c.HTML(http.StatusOK, "order_success.html", gin.H{"order": order})
}

func paymentMethod(raw string) domain.PaymentMethod {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.PaymentUPI)) {
		return domain.PaymentUPI
	}
	return domain.PaymentCOD
}
