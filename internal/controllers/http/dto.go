package http

// Field names match the storefront form inputs.
type orderForm struct {
	CustomerName     string `form:"customer_name"`
	Email            string `form:"email"`
	Phone            string `form:"phone"`
	AddressLine1     string `form:"address_line1"`
	AddressLine2     string `form:"address_line2"`
	City             string `form:"city"`
	State            string `form:"state"`
	PostalCode       string `form:"postal_code"`
	Latitude         string `form:"latitude"`
	Longitude        string `form:"longitude"`
	PaymentMethod    string `form:"payment_method"`
	PaymentReference string `form:"payment_reference"`
	Notes            string `form:"notes"`
}

// quickOrderForm backs the modal quick-order POST.
type quickOrderForm struct {
	Name       string `form:"name"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
	Address    string `form:"address"`
	City       string `form:"city"`
	State      string `form:"state"`
	PostalCode string `form:"postal_code"`
	Payment    string `form:"payment"`
	Notes      string `form:"notes"`
	Latitude   string `form:"latitude"`
	Longitude  string `form:"longitude"`
}
