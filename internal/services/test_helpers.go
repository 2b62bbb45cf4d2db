package services

import (
	"dairystore/internal/domain"
	"dairystore/internal/infra/mail"
	rabbit "dairystore/internal/infra/rabbitmq"
	"dairystore/internal/repository"

	"go.uber.org/zap"
)

const TestOperatorEmail = "orders@shivorganics.local"

func NewTestOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	sender mail.Sender,
	publisher rabbit.PublisherInterface,
) *OrderService {
	return NewOrderService(orders, products, NewNotifier(sender, TestOperatorEmail), publisher, zap.NewNop())
}

func NewTestCatalogService(products repository.ProductRepository) *CatalogService {
	return NewCatalogService(products, zap.NewNop())
}

// TestProducts is the seeded catalog in ListActive order (volume ascending).
func TestProducts() []domain.Product {
	return []domain.Product{
		{ID: 3, Name: "Gir Cow Ghee 250ml", SizeML: 250, Price: 349, IsActive: true},
		{ID: 2, Name: "Gir Cow Ghee 500ml", SizeML: 500, Price: 649, IsActive: true},
		{ID: 1, Name: "Gir Cow Ghee 1L", SizeML: 1000, Price: 1199, IsActive: true},
	}
}

// ValidOrderInput covers every required field with quantities for the 1L and
// 250ml products.
func ValidOrderInput() PlaceOrderInput {
	return PlaceOrderInput{
		CustomerName:  "Asha",
		Email:         "a@x.com",
		Phone:         "9990001111",
		AddressLine1:  "12 MG Road",
		City:          "Pune",
		State:         "MH",
		PostalCode:    "411001",
		PaymentMethod: domain.PaymentCOD,
		Quantities:    map[uint64]int64{1: 2, 2: 0, 3: 1},
	}
}

func ValidQuickOrderInput() QuickOrderInput {
	return QuickOrderInput{
		Name:       "Asha",
		Email:      "a@x.com",
		Phone:      "9990001111",
		Address:    "12 MG Road",
		City:       "Pune",
		State:      "MH",
		PostalCode: "411001",
		Payment:    "cod",
	}
}
