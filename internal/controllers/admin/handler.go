package admin

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dairystore/internal/domain"
	"dairystore/internal/repository"
	"dairystore/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler is the staff console: order listing with search and filters, CSV
// order export, product maintenance and a product sheet export.
type Handler struct {
	orders  *services.OrderService
	catalog *services.CatalogService
	logger  *zap.Logger
}

func NewHandler(orders *services.OrderService, catalog *services.CatalogService, logger *zap.Logger) *Handler {
	return &Handler{orders: orders, catalog: catalog, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/admin")
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/export", h.ExportOrdersCSV)
	g.GET("/products", h.ListProducts)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
	g.GET("/products/export", h.ExportProductsExcel)
}

func (h *Handler) ListOrders(c *gin.Context) {
	filter, ok := orderFilter(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// csvColumns is the fixed export column order; downstream sheets depend on it.
var csvColumns = []string{
	"Order Number", "Order ID", "Created At", "Customer Name", "Email", "Phone",
	"Address Line1", "Address Line2", "City", "State", "Postal",
	"Latitude", "Longitude", "Payment Method", "Payment Reference",
	"Notes", "Total Amount",
}

func (h *Handler) ExportOrdersCSV(c *gin.Context) {
	filter, ok := orderFilter(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to export orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export orders"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=orders.csv")
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvColumns)
	for _, o := range orders {
		_ = w.Write([]string{
			o.OrderNumber,
			strconv.FormatUint(o.ID, 10),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			o.CustomerName,
			o.Email,
			o.Phone,
			o.AddressLine1,
			o.AddressLine2,
			o.City,
			o.State,
			o.PostalCode,
			coordinate(o.Latitude),
			coordinate(o.Longitude),
			string(o.PaymentMethod),
			o.PaymentReference,
			o.Notes,
			strconv.FormatInt(o.TotalAmount, 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.logger.Error("csv export write failed", zap.Error(err))
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.AllProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("failed to load product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}

	product.Name = req.Name
	product.SizeML = req.SizeML
	product.Price = req.Price
	product.Description = req.Description
	product.ImageURL = req.ImageURL
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.catalog.UpdateProduct(ctx, product); err != nil {
		h.logger.Error("failed to update product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	err = h.catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, repository.ErrProductReferenced):
			c.JSON(http.StatusConflict, gin.H{"error": "Product is referenced by existing orders and cannot be deleted"})
		default:
			h.logger.Error("failed to delete product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func orderFilter(c *gin.Context) (repository.OrderFilter, bool) {
	filter := repository.OrderFilter{Query: strings.TrimSpace(c.Query("q"))}
	switch payment := strings.ToUpper(strings.TrimSpace(c.Query("payment"))); payment {
	case "":
	case string(domain.PaymentCOD), string(domain.PaymentUPI):
		filter.Payment = domain.PaymentMethod(payment)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method filter"})
		return repository.OrderFilter{}, false
	}
	return filter, true
}

func coordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
