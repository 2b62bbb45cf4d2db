package domain

import (
	"strconv"
	"time"
)

type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "COD"
	PaymentUPI PaymentMethod = "UPI"
)

// Label returns the human-facing name used on pages, emails and exports.
func (m PaymentMethod) Label() string {
	if m == PaymentUPI {
		return "UPI (QR)"
	}
	return "Cash on Delivery"
}

type Order struct {
	ID               uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber      string        `json:"orderNumber" gorm:"size:20;uniqueIndex"`
	CreatedAt        time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	CustomerName     string        `json:"customerName" gorm:"size:120;not null"`
	Email            string        `json:"email" gorm:"size:254;not null"`
	Phone            string        `json:"phone" gorm:"size:20;not null"`
	AddressLine1     string        `json:"addressLine1" gorm:"size:200;not null"`
	AddressLine2     string        `json:"addressLine2" gorm:"size:200"`
	City             string        `json:"city" gorm:"size:100"`
	State            string        `json:"state" gorm:"size:100"`
	PostalCode       string        `json:"postalCode" gorm:"size:20"`
	Latitude         *float64      `json:"latitude"`
	Longitude        *float64      `json:"longitude"`
	PaymentMethod    PaymentMethod `json:"paymentMethod" gorm:"size:8;default:'COD'"`
	PaymentReference string        `json:"paymentReference" gorm:"size:120"`
	Notes            string        `json:"notes"`
	TotalAmount      int64         `json:"totalAmount" gorm:"not null;default:0"`
	Items            []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64  `json:"orderId" gorm:"not null;index"`
	ProductID uint64  `json:"productId" gorm:"not null;index"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int64   `json:"quantity" gorm:"not null"`
	// UnitPrice snapshots the product price at order time and never changes after.
	UnitPrice int64 `json:"unitPrice" gorm:"not null"`
}

func (i OrderItem) LineTotal() int64 {
	return i.Quantity * i.UnitPrice
}

// firstOrderNumber is assigned when no numeric order number exists yet.
const firstOrderNumber = 1000

// NextOrderNumber derives the order number for a new order from the highest
// numeric order number already stored; non-numeric legacy values are treated
// as absent and reported by the caller as maxExisting == 0. The scan and the
// insert must share one transaction or concurrent submissions can collide on
// the unique index.
func NextOrderNumber(maxExisting uint64) string {
	if maxExisting == 0 {
		return strconv.FormatUint(firstOrderNumber, 10)
	}
	return strconv.FormatUint(maxExisting+1, 10)
}
