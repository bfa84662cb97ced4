package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock OrderService ---

type mockOrderService struct {
	createFn func(ctx context.Context, params service.CreateOrderParams) (*models.Order, error)
	getFn    func(ctx context.Context, orderNo string) (*models.Order, error)
	payFn    func(ctx context.Context, orderNo string) (*models.Order, error)
	verifyFn func(ctx context.Context, orderNo, payerBankLast4, verifiedBy string) (*models.Order, error)
	cancelFn func(ctx context.Context, orderNo string) (*models.Order, error)
	listFn   func(ctx context.Context, params service.ListOrdersParams) (*service.ListOrdersResult, error)
	exportFn func(ctx context.Context, status string) ([]models.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, params service.CreateOrderParams) (*models.Order, error) {
	return m.createFn(ctx, params)
}
func (m *mockOrderService) GetOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	return m.getFn(ctx, orderNo)
}
func (m *mockOrderService) PayOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	return m.payFn(ctx, orderNo)
}
func (m *mockOrderService) VerifyTransferPayment(ctx context.Context, orderNo, payerBankLast4, verifiedBy string) (*models.Order, error) {
	return m.verifyFn(ctx, orderNo, payerBankLast4, verifiedBy)
}
func (m *mockOrderService) CancelOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	return m.cancelFn(ctx, orderNo)
}
func (m *mockOrderService) ListOrders(ctx context.Context, params service.ListOrdersParams) (*service.ListOrdersResult, error) {
	return m.listFn(ctx, params)
}
func (m *mockOrderService) ExportOrders(ctx context.Context, status string) ([]models.Order, error) {
	return m.exportFn(ctx, status)
}

// --- Tests ---

func pendingOrder() *models.Order {
	return &models.Order{
		ID:            1,
		OrderNo:       "T1ABCD2EF345678",
		CustomerName:  "Zhang Wei",
		CustomerEmail: "zhang@example.com",
		Attendees: models.AttendeeList{
			{Name: "Zhang Wei", TicketTypeID: 1, TicketName: "Early Bird", TicketPrice: decimal.NewFromInt(400)},
		},
		TotalAmount: decimal.NewFromInt(400),
		Status:      models.OrderPending,
	}
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestCreateOrder_Handler_Success(t *testing.T) {
	var gotParams service.CreateOrderParams
	svc := &mockOrderService{
		createFn: func(ctx context.Context, params service.CreateOrderParams) (*models.Order, error) {
			gotParams = params
			return pendingOrder(), nil
		},
	}

	e := echo.New()
	body := `{"customer_name":"Zhang Wei","customer_email":"zhang@example.com","attendees":[{"name":"Zhang Wei","ticket_type_id":1}]}`
	req, rec := jsonRequest(http.MethodPost, "/api/orders", body)
	c := e.NewContext(req, rec)

	h := NewOrderHandler(svc)
	err := h.CreateOrder(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Zhang Wei", gotParams.CustomerName)

	var resp dto.OrderResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "T1ABCD2EF345678", resp.OrderNo)
	assert.Equal(t, "Pending payment", resp.StatusLabel)
}

func TestCreateOrder_Handler_LegacyBody(t *testing.T) {
	var gotParams service.CreateOrderParams
	svc := &mockOrderService{
		createFn: func(ctx context.Context, params service.CreateOrderParams) (*models.Order, error) {
			gotParams = params
			return pendingOrder(), nil
		},
	}

	e := echo.New()
	body := `{"customer_name":"Zhang Wei","customer_email":"zhang@example.com","ticket_type_id":1,"quantity":2}`
	req, rec := jsonRequest(http.MethodPost, "/api/orders", body)
	c := e.NewContext(req, rec)

	h := NewOrderHandler(svc)
	err := h.CreateOrder(c)

	assert.NoError(t, err)
	assert.Len(t, gotParams.Attendees, 2)
}

func TestCreateOrder_Handler_ValidationError(t *testing.T) {
	svc := &mockOrderService{
		createFn: func(ctx context.Context, params service.CreateOrderParams) (*models.Order, error) {
			return nil, &service.ValidationError{Field: "customer_email", Reason: "must be a valid email address"}
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/orders", `{"customer_name":"Zhang Wei"}`)
	c := e.NewContext(req, rec)

	err := NewOrderHandler(svc).CreateOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateOrder_Handler_SoldOut(t *testing.T) {
	svc := &mockOrderService{
		createFn: func(ctx context.Context, params service.CreateOrderParams) (*models.Order, error) {
			return nil, service.ErrTicketUnavailable
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/orders", `{"customer_name":"Zhang Wei","customer_email":"z@e.com","attendees":[{"name":"Z","ticket_type_id":1}]}`)
	c := e.NewContext(req, rec)

	err := NewOrderHandler(svc).CreateOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetOrder_Handler_NotFound(t *testing.T) {
	svc := &mockOrderService{
		getFn: func(ctx context.Context, orderNo string) (*models.Order, error) {
			return nil, service.ErrOrderNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/TNOPE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("TNOPE")

	err := NewOrderHandler(svc).GetOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestPayOrder_Handler_Success(t *testing.T) {
	svc := &mockOrderService{
		payFn: func(ctx context.Context, orderNo string) (*models.Order, error) {
			order := pendingOrder()
			order.Status = models.OrderPaid
			return order, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/T1ABCD2EF345678/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("T1ABCD2EF345678")

	err := NewOrderHandler(svc).PayOrder(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.OrderResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderPaid, resp.Status)
}

func TestPayOrder_Handler_AlreadyPaid(t *testing.T) {
	svc := &mockOrderService{
		payFn: func(ctx context.Context, orderNo string) (*models.Order, error) {
			return nil, service.ErrAlreadyPaid
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/T1/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("T1")

	err := NewOrderHandler(svc).PayOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
