package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appordering "github.com/shopadmin/backend/internal/application/ordering"
	"github.com/shopadmin/backend/internal/domain/ordering"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/storage"
	"github.com/shopadmin/backend/internal/interfaces/http/dto"
)

// MockOrderRepository implements ordering.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter shared.Filter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatsReader implements appordering.OrderStatsReader for testing
type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) CountOrdersByStatus(ctx context.Context) ([]appordering.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]appordering.StatusCount), args.Error(1)
}

func (m *MockStatsReader) TotalOrderRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func newOrderRouter(t *testing.T, orders *MockOrderRepository, products *MockProductRepository, reader *MockStatsReader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	slips, err := storage.NewLocalSlipStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	orderService := appordering.NewOrderService(orders, products, slips)
	statsService := appordering.NewOrderStatsService(reader)

	engine := gin.New()
	api := engine.Group("/api")
	NewOrderHandler(orderService, statsService).RegisterRoutes(api)
	return engine
}

func orderPayload(productID string) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]string{
			"name":  "Alice Smith",
			"email": "alice@example.com",
			"phone": "555-0100",
		},
		"items": []map[string]interface{}{
			{"product": productID, "quantity": 2},
		},
		"shippingAddress": map[string]string{
			"street":  "1 Main St",
			"city":    "Springfield",
			"state":   "IL",
			"zipCode": "62701",
			"country": "USA",
		},
		"paymentMethod": "credit_card",
	}
}

func TestOrderHandler_Create_JSON(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	category := testCategory(t, "Electronics")
	product := testProduct(t, "Widget", category.ID)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("Save", mock.Anything, mock.Anything).Return(nil)
	orders.On("Save", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(orderPayload(product.ID.String()))
	engine := newOrderRouter(t, orders, products, new(MockStatsReader))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["orderNumber"])
	assert.Equal(t, "pending", data["status"])
	assert.InDelta(t, 50.0, data["subtotal"], 0.001)
	assert.InDelta(t, 4.0, data["tax"], 0.001)
	assert.InDelta(t, 10.0, data["shipping"], 0.001)
	assert.InDelta(t, 64.0, data["total"], 0.001)

	// stock was reserved
	assert.Equal(t, 3, product.Stock)
}

func TestOrderHandler_Create_InsufficientStock(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	category := testCategory(t, "Electronics")
	product := testProduct(t, "Widget", category.ID)
	product.Stock = 1
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	body, _ := json.Marshal(orderPayload(product.ID.String()))
	engine := newOrderRouter(t, orders, products, new(MockStatsReader))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
}

func TestOrderHandler_Create_Multipart(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	category := testCategory(t, "Electronics")
	product := testProduct(t, "Widget", category.ID)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("Save", mock.Anything, mock.Anything).Return(nil)

	// the slip is attached by id after placement, so FindByID has to
	// serve the order captured from the first Save
	var captured bool
	orders.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		if captured {
			return
		}
		captured = true
		placed := args.Get(1).(*ordering.Order)
		orders.On("FindByID", mock.Anything, placed.ID).Return(placed, nil)
	}).Return(nil)

	items, _ := json.Marshal([]map[string]interface{}{
		{"product": product.ID.String(), "quantity": 1},
	})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("customer[name]", "Bob Jones")
	_ = form.WriteField("customer[email]", "bob@example.com")
	_ = form.WriteField("customer[phone]", "555-0200")
	_ = form.WriteField("shippingAddress[street]", "2 Oak Ave")
	_ = form.WriteField("shippingAddress[city]", "Portland")
	_ = form.WriteField("paymentMethod", "bank_transfer")
	_ = form.WriteField("items", string(items))
	part, err := form.CreateFormFile("paymentSlip", "slip.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	engine := newOrderRouter(t, orders, products, new(MockStatsReader))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	customer := data["customer"].(map[string]interface{})
	assert.Equal(t, "Bob Jones", customer["name"])
	assert.Contains(t, data["paymentSlip"], "/uploads/")
	assert.Contains(t, data["paymentSlip"], "slip.jpg")
}

func TestOrderHandler_Stats(t *testing.T) {
	reader := new(MockStatsReader)
	reader.On("CountOrdersByStatus", mock.Anything).Return([]appordering.StatusCount{
		{Status: "pending", Count: 3},
		{Status: "completed", Count: 2},
	}, nil)
	reader.On("TotalOrderRevenue", mock.Anything).Return(512.5, nil)

	engine := newOrderRouter(t, new(MockOrderRepository), new(MockProductRepository), reader)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/orders/stats", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(5), data["totalOrders"])
	assert.InDelta(t, 512.5, data["totalRevenue"], 0.001)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	newPendingOrder := func(t *testing.T) *ordering.Order {
		t.Helper()
		order, err := ordering.NewOrder(
			ordering.Customer{Name: "Alice", Email: "alice@example.com", Phone: "555-0100"},
			[]ordering.OrderItem{{ProductID: uuid.New(), Name: "Widget", Price: decimal.NewFromInt(20), Quantity: 1, Total: decimal.NewFromInt(20)}},
			ordering.Address{Street: "1 Main St"}, nil, "credit_card", "")
		require.NoError(t, err)
		return order
	}

	t.Run("valid transition", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := newPendingOrder(t)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orders.On("Save", mock.Anything, mock.Anything).Return(nil)

		engine := newOrderRouter(t, orders, new(MockProductRepository), new(MockStatsReader))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPatch, "/api/orders/"+order.ID.String()+"/status",
			bytes.NewReader([]byte(`{"status": "processing"}`)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "processing", data["status"])
		history := data["statusHistory"].([]interface{})
		require.Len(t, history, 2)
		last := history[1].(map[string]interface{})
		assert.Equal(t, "Status changed to processing", last["note"])
	})

	t.Run("unknown status", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := newPendingOrder(t)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		engine := newOrderRouter(t, orders, new(MockProductRepository), new(MockStatsReader))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPatch, "/api/orders/"+order.ID.String()+"/status",
			bytes.NewReader([]byte(`{"status": "teleported"}`)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_List_DateFilter(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		engine := newOrderRouter(t, new(MockOrderRepository), new(MockProductRepository), new(MockStatsReader))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/orders?startDate=tomorrow", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("date only", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("List", mock.Anything, mock.Anything).Return([]*ordering.Order{}, int64(0), nil)

		engine := newOrderRouter(t, orders, new(MockProductRepository), new(MockStatsReader))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/orders?startDate=2026-01-01&endDate=2026-02-01", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
