package ordering

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// OrderStatus enumerates the order lifecycle states
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatuses lists every accepted order status
var ValidStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s OrderStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// TaxRate is applied to the order subtotal
var TaxRate = decimal.NewFromFloat(0.08)

// FreeShippingThreshold is the subtotal above which shipping is free
var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingFee       = decimal.NewFromInt(10)
)

// Customer identifies who placed the order
type Customer struct {
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null" json:"email"`
	Phone string `gorm:"type:varchar(30);not null" json:"phone"`
}

// Address is a postal address. Only street is required at placement.
type Address struct {
	Street  string `gorm:"type:varchar(200)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zipCode"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}

// OrderItem is an immutable snapshot of a purchased product. Later changes
// to the live product never alter the line item.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Image     string          `gorm:"type:text" json:"image"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// StatusChange is one entry in an order's append-only status history
type StatusChange struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"-"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Timestamp time.Time   `gorm:"not null" json:"timestamp"`
	Note      string      `gorm:"type:varchar(500)" json:"note"`
}

// TableName returns the table name for GORM
func (StatusChange) TableName() string {
	return "order_status_history"
}

// Order is the ordering aggregate root. It owns its items and history rows.
type Order struct {
	shared.BaseEntity
	OrderNumber     string          `gorm:"type:varchar(30);not null;uniqueIndex" json:"orderNumber"`
	Customer        Customer        `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	Tax             decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax"`
	Shipping        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"shipping"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
	ShippingAddress Address         `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	BillingAddress  Address         `gorm:"embedded;embeddedPrefix:bill_" json:"billingAddress"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null" json:"paymentMethod"`
	PaymentSlipURL  string          `gorm:"type:text" json:"paymentSlip,omitempty"`
	Notes           string          `gorm:"type:varchar(1000)" json:"notes"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	StatusHistory   []StatusChange  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"statusHistory"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder assembles an order from already reserved line items and computes
// totals. Items must carry their snapshot fields and line totals.
func NewOrder(customer Customer, items []OrderItem, shippingAddress Address, billingAddress *Address, paymentMethod, notes string) (*Order, error) {
	if customer.Name == "" || customer.Email == "" || customer.Phone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name, email, and phone are required")
	}
	if shippingAddress.Street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address with street is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must contain at least one item")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment method is required")
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		OrderNumber:     GenerateOrderNumber(),
		Customer:        customer,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
		Status:          OrderStatusPending,
	}
	if billingAddress != nil && billingAddress.Street != "" {
		o.BillingAddress = *billingAddress
	} else {
		// Billing address defaults to the shipping address
		o.BillingAddress = shippingAddress
	}

	subtotal := decimal.Zero
	for _, it := range items {
		it.ID = uuid.New()
		it.OrderID = o.ID
		subtotal = subtotal.Add(it.Total)
		o.Items = append(o.Items, it)
	}
	o.Subtotal = subtotal.Round(2)
	o.Tax = subtotal.Mul(TaxRate).Round(2)
	if subtotal.GreaterThan(FreeShippingThreshold) {
		o.Shipping = decimal.Zero
	} else {
		o.Shipping = FlatShippingFee
	}
	o.Total = o.Subtotal.Add(o.Tax).Add(o.Shipping)

	o.StatusHistory = []StatusChange{{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    OrderStatusPending,
		Timestamp: o.CreatedAt,
		Note:      "Order created",
	}}
	return o, nil
}

// ChangeStatus moves the order to status and appends a history entry.
// When note is empty an auto-generated note is recorded.
func (o *Order) ChangeStatus(status OrderStatus, note string) error {
	if !IsValidStatus(status) {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Invalid order status: %s", status))
	}
	if note == "" {
		note = fmt.Sprintf("Status changed to %s", status)
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    status,
		Timestamp: time.Now(),
		Note:      note,
	})
	o.Touch()
	return nil
}

// AttachPaymentSlip records the stored slip location. The slip is accepted
// as-is and never gates order processing.
func (o *Order) AttachPaymentSlip(url string) {
	o.PaymentSlipURL = url
	o.Touch()
}

// RestoresStockOnDelete reports whether deleting the order should return
// its item quantities to product stock. Completed orders are treated as
// fulfilled and keep their stock deduction.
func (o *Order) RestoresStockOnDelete() bool {
	return o.Status != OrderStatusCompleted
}

const orderNumCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber produces an order number of the form ORD-<unix-millis>-<RANDOM4>
func GenerateOrderNumber() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), time.Now().Nanosecond()%10000)
	}
	for i, b := range buf {
		buf[i] = orderNumCharset[int(b)%len(orderNumCharset)]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), string(buf))
}
