package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"dairystore/internal/domain"
	"dairystore/internal/infra/mail"

	"golang.org/x/sync/errgroup"
)

const operatorFooter = "\n\n--\nReference Confirmation: If UPI, verify the above reference in bank statement."

// Notifier composes and sends the order confirmation mails. It only ever
// deals with already-committed orders; a send failure is reported to the
// caller but cannot affect persistence.
type Notifier struct {
	sender        mail.Sender
	operatorEmail string
}

func NewNotifier(sender mail.Sender, operatorEmail string) *Notifier {
	return &Notifier{
		sender:        sender,
		operatorEmail: operatorEmail,
	}
}

// OrderPlaced sends the customer confirmation and the operator copy in
// parallel and returns the first send error.
func (n *Notifier) OrderPlaced(order *domain.Order) error {
	subjectCustomer := fmt.Sprintf("Your Shiv Organic Dairy Farm order #%s confirmation", order.OrderNumber)
	subjectOperator := fmt.Sprintf("New order #%s received - Shiv Organic Dairy Farm", order.OrderNumber)
	body := composeOrderSummary(order)

	g := new(errgroup.Group)
	if order.Email != "" {
		g.Go(func() error {
			return n.sender.Send(order.Email, subjectCustomer, body)
		})
	}
	if n.operatorEmail != "" {
		g.Go(func() error {
			return n.sender.Send(n.operatorEmail, subjectOperator, body+operatorFooter)
		})
	}
	return g.Wait()
}

func composeOrderSummary(order *domain.Order) string {
	lines := []string{
		fmt.Sprintf("Thank you %s for your order!", order.CustomerName),
		"",
		fmt.Sprintf("Order Number: %s", order.OrderNumber),
		"Order summary:",
	}
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s x %d @ ₹%d = ₹%d",
			item.Product.Name, item.Quantity, item.UnitPrice, item.LineTotal()))
	}
	lines = append(lines, fmt.Sprintf("Total: ₹%d", order.TotalAmount))
	lines = append(lines, locationLines(order)...)
	lines = append(lines,
		"",
		fmt.Sprintf("Payment method: %s", order.PaymentMethod.Label()),
	)
	if order.PaymentReference != "" {
		lines = append(lines, fmt.Sprintf("Payment reference (customer provided): %s", order.PaymentReference))
	}
	lines = append(lines,
		"",
		"We will contact you shortly about delivery details.",
	)
	return strings.Join(lines, "\n")
}

// locationLines prefers precise coordinates; when absent it falls back to an
// address-search link, skipping empty and "-" placeholder parts.
func locationLines(order *domain.Order) []string {
	if order.Latitude != nil && order.Longitude != nil {
		lat := strconv.FormatFloat(*order.Latitude, 'f', -1, 64)
		lng := strconv.FormatFloat(*order.Longitude, 'f', -1, 64)
		return []string{
			fmt.Sprintf("Delivery location: %s, %s", lat, lng),
			fmt.Sprintf("Maps link: https://maps.google.com/?q=%s,%s", lat, lng),
		}
	}
	if order.AddressLine1 == "" {
		return nil
	}
	parts := []string{order.AddressLine1}
	for _, p := range []string{order.City, order.State, order.PostalCode} {
		if p != "" && p != "-" {
			parts = append(parts, p)
		}
	}
	q := url.QueryEscape(strings.Join(parts, ", "))
	return []string{
		"Delivery location: (address provided)",
		fmt.Sprintf("Maps search: https://www.google.com/maps/search/?api=1&query=%s", q),
	}
}
