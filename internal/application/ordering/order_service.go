package ordering

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/ordering"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ListOrdersQuery carries the supported order list parameters
type ListOrdersQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder string
}

// OrderService implements the order use cases
type OrderService struct {
	orders   ordering.OrderRepository
	products catalog.ProductRepository
	slips    SlipStorage
}

// NewOrderService creates a new order service
func NewOrderService(orders ordering.OrderRepository, products catalog.ProductRepository, slips SlipStorage) *OrderService {
	return &OrderService{orders: orders, products: products, slips: slips}
}

// PlaceOrder validates the request, reserves stock item by item and persists
// the order.
//
// Items are processed sequentially so each stock check sees the decrements
// applied by earlier items of the same order. Stock decrements are persisted
// per item without a surrounding transaction: a failure on a later item
// aborts the order but does not restore stock already taken by earlier items.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderDTO, error) {
	if req.Customer.Name == "" || req.Customer.Email == "" || req.Customer.Phone == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name, email, and phone are required")
	}
	if req.ShippingAddress.Street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address with street is required")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must contain at least one item")
	}
	if req.PaymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment method is required")
	}

	items := make([]ordering.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID, err := uuid.Parse(line.Product)
		if err != nil {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product with ID %s not found", line.Product))
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
					fmt.Sprintf("Product with ID %s not found", line.Product))
			}
			return nil, err
		}
		if err := product.Reserve(line.Quantity); err != nil {
			return nil, err
		}
		if err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}
		items = append(items, ordering.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Total:     product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	var billing *ordering.Address
	if req.BillingAddress != nil {
		b := toAddress(*req.BillingAddress)
		billing = &b
	}
	order, err := ordering.NewOrder(
		ordering.Customer{Name: req.Customer.Name, Email: req.Customer.Email, Phone: req.Customer.Phone},
		items, toAddress(req.ShippingAddress), billing, req.PaymentMethod, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

// ListOrders returns a page of orders
func (s *OrderService) ListOrders(ctx context.Context, query ListOrdersQuery) ([]*OrderDTO, int64, error) {
	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.Limit,
		Search:   query.Search,
		OrderBy:  query.SortBy,
		OrderDir: query.SortOrder,
		Filters:  map[string]interface{}{},
	}
	if query.Status != "" && query.Status != "all" {
		filter.Filters["status"] = query.Status
	}
	if query.StartDate != nil {
		filter.Filters["start_date"] = *query.StartDate
	}
	if query.EndDate != nil {
		filter.Filters["end_date"] = *query.EndDate
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}
	return dtos, total, nil
}

// GetOrder returns a single order by id
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

// UpdateOrder replaces the order's mutable fields, including status. Items
// and totals are a snapshot and never change after placement.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Customer != nil {
		if req.Customer.Name == "" || req.Customer.Email == "" || req.Customer.Phone == "" {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name, email, and phone are required")
		}
		order.Customer = ordering.Customer{Name: req.Customer.Name, Email: req.Customer.Email, Phone: req.Customer.Phone}
	}
	if req.ShippingAddress != nil {
		if req.ShippingAddress.Street == "" {
			return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address with street is required")
		}
		order.ShippingAddress = toAddress(*req.ShippingAddress)
	}
	if req.BillingAddress != nil {
		order.BillingAddress = toAddress(*req.BillingAddress)
	}
	if req.PaymentMethod != nil {
		if *req.PaymentMethod == "" {
			return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment method is required")
		}
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.Status != nil && ordering.OrderStatus(*req.Status) != order.Status {
		if err := order.ChangeStatus(ordering.OrderStatus(*req.Status), ""); err != nil {
			return nil, err
		}
	}
	order.Touch()
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

// UpdateStatus appends a status transition to the order's history
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.ChangeStatus(ordering.OrderStatus(req.Status), req.Note); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

// DeleteOrder removes an order together with its stored payment slip.
// Unless the order is completed, item quantities are returned to product
// stock first. Products that no longer exist are skipped.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return err
	}
	if order.PaymentSlipURL != "" {
		_ = s.slips.Remove(ctx, order.PaymentSlipURL)
	}
	if order.RestoresStockOnDelete() {
		for _, item := range order.Items {
			product, err := s.products.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			product.Restock(item.Quantity)
			if err := s.products.Save(ctx, product); err != nil {
				return err
			}
		}
	}
	return s.orders.Delete(ctx, id)
}

// AttachPaymentSlip stores an uploaded payment slip and records its URL on
// the order. A previously attached slip is replaced and its file removed.
// The slip is accepted without any verification.
func (s *OrderService) AttachPaymentSlip(ctx context.Context, id uuid.UUID, filename string, content io.Reader, size int64, contentType string) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.slips.Store(ctx, fmt.Sprintf("%s-%s", order.OrderNumber, filename), content, size, contentType)
	if err != nil {
		return nil, err
	}
	if old := order.PaymentSlipURL; old != "" && old != url {
		// a stale file never fails the upload
		_ = s.slips.Remove(ctx, old)
	}
	order.AttachPaymentSlip(url)
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func (s *OrderService) findOrder(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	return order, nil
}
