package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"dairystore/internal/domain"
	rabbit "dairystore/internal/infra/rabbitmq"
	"dairystore/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotifyFailed wraps a confirmation send failure; the order it reports
	// on is already committed when this is returned.
	ErrNotifyFailed = errors.New("order confirmation could not be sent")
	// ErrQuickOrderInvalid rejects a quick-order submission with any missing
	// required field. The quick-order form surfaces no field detail.
	ErrQuickOrderInvalid = errors.New("missing required order fields")
)

// ValidationError reports field-level problems with an order submission so
// the form can be re-rendered with messages next to each field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid order submission: " + strings.Join(keys, ", ")
}

type OrderService struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	notifier    *Notifier
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	notifier *Notifier,
	publisher rabbit.PublisherInterface,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

type PlaceOrderInput struct {
	CustomerName     string
	Email            string
	Phone            string
	AddressLine1     string
	AddressLine2     string
	City             string
	State            string
	PostalCode       string
	Latitude         *float64
	Longitude        *float64
	PaymentMethod    domain.PaymentMethod
	PaymentReference string
	Notes            string
	// Quantities maps product ID to requested quantity; zero or absent means
	// not ordered.
	Quantities map[uint64]int64
}

// PlaceOrder runs the full order workflow: validate, snapshot prices, persist
// header and items atomically, then notify. On ErrNotifyFailed the returned
// order is non-nil and committed.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if verr := validatePlaceOrder(in); verr != nil {
		return nil, verr
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName:     strings.TrimSpace(in.CustomerName),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		AddressLine1:     strings.TrimSpace(in.AddressLine1),
		AddressLine2:     strings.TrimSpace(in.AddressLine2),
		City:             strings.TrimSpace(in.City),
		State:            strings.TrimSpace(in.State),
		PostalCode:       strings.TrimSpace(in.PostalCode),
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		PaymentMethod:    in.PaymentMethod,
		PaymentReference: strings.TrimSpace(in.PaymentReference),
		Notes:            strings.TrimSpace(in.Notes),
	}

	var total int64
	for _, p := range products {
		qty := in.Quantities[p.ID]
		if qty <= 0 {
			continue
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: p.ID,
			Product:   p,
			Quantity:  qty,
			UnitPrice: p.Price,
		})
		total += qty * p.Price
	}
	if len(order.Items) == 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"items": "Please add at least one product to your order.",
		}}
	}
	order.TotalAmount = total

	if err := s.place(ctx, order); err != nil {
		if errors.Is(err, ErrNotifyFailed) {
			return order, err
		}
		return nil, err
	}
	return order, nil
}

func validatePlaceOrder(in PlaceOrderInput) *ValidationError {
	fields := map[string]string{}
	required := map[string]string{
		"customer_name": in.CustomerName,
		"email":         in.Email,
		"phone":         in.Phone,
		"address_line1": in.AddressLine1,
		"city":          in.City,
		"state":         in.State,
		"postal_code":   in.PostalCode,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "This field is required."
		}
	}
	if in.PaymentMethod == domain.PaymentUPI && strings.TrimSpace(in.PaymentReference) == "" {
		fields["payment_reference"] = "Please enter UPI transaction reference (last 6)."
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// quickOrderSizeML fixes the product the quick-order form sells.
const quickOrderSizeML = 250

type QuickOrderInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Payment    string // "cod" or "upi", case-insensitive
	Notes      string
	Latitude   string // raw form values, ignored when not parseable
	Longitude  string
}

// QuickOrder is the simplified single-item path: fixed 250ml product,
// quantity one, same atomicity and post-commit contract as PlaceOrder.
func (s *OrderService) QuickOrder(ctx context.Context, in QuickOrderInput) (*domain.Order, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)
	city := strings.TrimSpace(in.City)
	state := strings.TrimSpace(in.State)
	postal := strings.TrimSpace(in.PostalCode)
	if name == "" || email == "" || phone == "" || address == "" || city == "" || state == "" || postal == "" {
		return nil, ErrQuickOrderInvalid
	}

	product, err := s.quickOrderProduct(ctx)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	method := domain.PaymentCOD
	if strings.EqualFold(strings.TrimSpace(in.Payment), "upi") {
		method = domain.PaymentUPI
	}

	order := &domain.Order{
		CustomerName:  name,
		Email:         email,
		Phone:         phone,
		AddressLine1:  address,
		City:          city,
		State:         state,
		PostalCode:    postal,
		PaymentMethod: method,
		Notes:         strings.TrimSpace(in.Notes),
		Items: []domain.OrderItem{{
			ProductID: product.ID,
			Product:   *product,
			Quantity:  1,
			UnitPrice: product.Price,
		}},
		TotalAmount: product.Price,
	}

	if lat, latErr := strconv.ParseFloat(strings.TrimSpace(in.Latitude), 64); latErr == nil {
		if lng, lngErr := strconv.ParseFloat(strings.TrimSpace(in.Longitude), 64); lngErr == nil {
			order.Latitude = &lat
			order.Longitude = &lng
		}
	}

	if err := s.place(ctx, order); err != nil {
		if errors.Is(err, ErrNotifyFailed) {
			return order, err
		}
		return nil, err
	}
	return order, nil
}

// quickOrderProduct resolves the fixed quick-order product, through redis
// when a client is configured.
func (s *OrderService) quickOrderProduct(ctx context.Context) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:size:%d", quickOrderSizeML)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.products.ActiveBySize(ctx, quickOrderSizeML)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && p != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return p, nil
}

// place persists the order, then drains the post-commit actions. The hook
// list is assembled before the transaction and drained strictly after it
// returns success, so a rollback never triggers a confirmation and a hook
// failure never undoes the commit.
func (s *OrderService) place(ctx context.Context, order *domain.Order) error {
	postCommit := []func() error{
		func() error { return s.notifier.OrderPlaced(order) },
		func() error {
			s.publishOrderPlaced(order)
			return nil
		},
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}

	for _, hook := range postCommit {
		if err := hook(); err != nil {
			s.logger.Error("post-commit notification failed",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
			return fmt.Errorf("%w: %v", ErrNotifyFailed, err)
		}
	}

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)),
		zap.Int64("total_amount", order.TotalAmount))
	return nil
}

func (s *OrderService) publishOrderPlaced(order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.NewOrderPlacedEvent(order)
	if err := s.publisher.Publish(context.Background(), "order.placed", evt); err != nil {
		// Log only; the mail path is the delivery guarantee here.
		s.logger.Error("failed to publish order.placed event",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
}

const (
	statusLabel         = "Processing"
	fallbackProductName = "Ghee"
)

type StatusReport struct {
	OrderID       string `json:"order_id"`
	Name          string `json:"name"`
	Product       string `json:"product"`
	Status        string `json:"status"`
	Total         int64  `json:"total"`
	PaymentMethod string `json:"payment_method"`
	CreatedAt     string `json:"created_at"`
}

// CheckStatus resolves an order number into the public status payload.
func (s *OrderService) CheckStatus(ctx context.Context, orderNumber string) (*StatusReport, error) {
	o, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	product := fallbackProductName
	if len(o.Items) > 0 && o.Items[0].Product.Name != "" {
		product = o.Items[0].Product.Name
	}

	return &StatusReport{
		OrderID:       o.OrderNumber,
		Name:          o.CustomerName,
		Product:       product,
		Status:        statusLabel,
		Total:         o.TotalAmount,
		PaymentMethod: o.PaymentMethod.Label(),
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04"),
	}, nil
}

// FindForConfirmation resolves the success-page order_id parameter: order
// number first, then numeric primary key as a legacy fallback. A miss is
// (nil, nil) so the page can render without an order.
func (s *OrderService) FindForConfirmation(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, nil
	}
	o, err := s.orders.FindByNumber(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o != nil {
		return o, nil
	}
	if id, err := strconv.ParseUint(orderID, 10, 64); err == nil {
		return s.orders.FindByID(ctx, id)
	}
	return nil, nil
}

// ListOrders backs the admin order table and CSV export.
func (s *OrderService) ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, f)
}
