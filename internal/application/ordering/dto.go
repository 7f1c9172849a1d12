package ordering

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/ordering"
)

// CustomerDTO identifies the person placing an order
type CustomerDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AddressDTO is the request and response shape for postal addresses
type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest carries everything needed to place an order
type PlaceOrderRequest struct {
	Customer        CustomerDTO        `json:"customer"`
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress AddressDTO         `json:"shippingAddress"`
	BillingAddress  *AddressDTO        `json:"billingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

// UpdateOrderRequest carries the fields accepted on a full order update
type UpdateOrderRequest struct {
	Customer        *CustomerDTO `json:"customer"`
	ShippingAddress *AddressDTO  `json:"shippingAddress"`
	BillingAddress  *AddressDTO  `json:"billingAddress"`
	PaymentMethod   *string      `json:"paymentMethod"`
	Notes           *string      `json:"notes"`
	Status          *string      `json:"status"`
}

// UpdateStatusRequest carries a status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// OrderItemDTO is the response shape of a line-item snapshot
type OrderItemDTO struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// StatusChangeDTO is one entry of the status history
type StatusChangeDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// OrderDTO is the order response shape
type OrderDTO struct {
	ID              string            `json:"id"`
	OrderNumber     string            `json:"orderNumber"`
	Customer        CustomerDTO       `json:"customer"`
	Items           []OrderItemDTO    `json:"items"`
	Subtotal        float64           `json:"subtotal"`
	Tax             float64           `json:"tax"`
	Shipping        float64           `json:"shipping"`
	Total           float64           `json:"total"`
	ShippingAddress AddressDTO        `json:"shippingAddress"`
	BillingAddress  AddressDTO        `json:"billingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	PaymentSlip     string            `json:"paymentSlip,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Status          string            `json:"status"`
	StatusHistory   []StatusChangeDTO `json:"statusHistory"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func toAddressDTO(a ordering.Address) AddressDTO {
	return AddressDTO{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
}

func toAddress(a AddressDTO) ordering.Address {
	return ordering.Address{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
}

func toOrderDTO(o *ordering.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		price, _ := it.Price.Float64()
		total, _ := it.Total.Float64()
		items = append(items, OrderItemDTO{
			Product:  it.ProductID.String(),
			Name:     it.Name,
			Image:    it.Image,
			Price:    price,
			Quantity: it.Quantity,
			Total:    total,
		})
	}
	history := make([]StatusChangeDTO, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, StatusChangeDTO{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
			Note:      h.Note,
		})
	}
	subtotal, _ := o.Subtotal.Float64()
	tax, _ := o.Tax.Float64()
	shipping, _ := o.Shipping.Float64()
	total, _ := o.Total.Float64()
	return &OrderDTO{
		ID:          o.ID.String(),
		OrderNumber: o.OrderNumber,
		Customer: CustomerDTO{
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
		},
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           total,
		ShippingAddress: toAddressDTO(o.ShippingAddress),
		BillingAddress:  toAddressDTO(o.BillingAddress),
		PaymentMethod:   o.PaymentMethod,
		PaymentSlip:     o.PaymentSlipURL,
		Notes:           o.Notes,
		Status:          string(o.Status),
		StatusHistory:   history,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
