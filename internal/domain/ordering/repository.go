package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// OrderRepository defines the persistence operations for orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	List(ctx context.Context, filter shared.Filter) ([]*Order, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
