package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/middleware"
	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrders_Handler_QueryParams(t *testing.T) {
	var gotParams service.ListOrdersParams
	svc := &mockOrderService{
		listFn: func(ctx context.Context, params service.ListOrdersParams) (*service.ListOrdersResult, error) {
			gotParams = params
			return &service.ListOrdersResult{
				Orders:     []models.Order{*pendingOrder()},
				Total:      1,
				Page:       2,
				PageSize:   10,
				TotalPages: 1,
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?page=2&pageSize=10&status=pending&search=zhang", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAdminOrderHandler(svc).ListOrders(c)

	assert.NoError(t, err)
	assert.Equal(t, 2, gotParams.Page)
	assert.Equal(t, 10, gotParams.PageSize)
	assert.Equal(t, "pending", gotParams.Status)
	assert.Equal(t, "zhang", gotParams.Search)

	var resp dto.ListOrdersResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, int64(1), resp.Total)
}

func TestExportOrders_Handler_CSV(t *testing.T) {
	paidAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	order := pendingOrder()
	order.Status = models.OrderPaid
	order.PaidAt = &paidAt
	order.PaymentMethod = "transfer"
	order.PayerBankLast4 = "6789"
	order.VerifiedBy = "alice"
	order.Attendees = append(order.Attendees, models.Attendee{
		Name: "Li Na", TicketTypeID: 2, TicketName: "Regular", TicketPrice: decimal.NewFromInt(600),
	})

	svc := &mockOrderService{
		exportFn: func(ctx context.Context, status string) ([]models.Order, error) {
			assert.Equal(t, "paid", status)
			return []models.Order{*order}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/export?status=paid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAdminOrderHandler(svc).ExportOrders(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFF"), "export starts with a UTF-8 BOM")

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(body, "\uFEFF")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Order No", rows[0][0])
	assert.Equal(t, "T1ABCD2EF345678", rows[1][0])
	assert.Equal(t, "Zhang Wei (Early Bird 400.00); Li Na (Regular 600.00)", rows[1][4])
	assert.Equal(t, "Paid", rows[1][6])
	assert.Equal(t, "6789", rows[1][8])
}

func TestConfirmPayment_Handler_NotFound(t *testing.T) {
	svc := &mockOrderService{
		payFn: func(ctx context.Context, orderNo string) (*models.Order, error) {
			return nil, service.ErrOrderNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders/TNOPE/confirm-payment", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("TNOPE")

	err := NewAdminOrderHandler(svc).ConfirmPayment(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestVerifyTransfer_Handler_UsesClaimsUsername(t *testing.T) {
	var gotVerifier string
	svc := &mockOrderService{
		verifyFn: func(ctx context.Context, orderNo, payerBankLast4, verifiedBy string) (*models.Order, error) {
			gotVerifier = verifiedBy
			order := pendingOrder()
			order.Status = models.OrderPaid
			order.PayerBankLast4 = payerBankLast4
			return order, nil
		},
	}

	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/admin/orders/T1/verify-transfer", `{"payer_bank_last4":"6789"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("T1")

	// Simulate RequireAdmin having run.
	mw := middleware.RequireAdmin(stubParser{&service.Claims{Username: "alice", Role: models.RoleAdmin}})
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	handler := mw(func(c echo.Context) error {
		return NewAdminOrderHandler(svc).VerifyTransfer(c)
	})

	err := handler(c)

	assert.NoError(t, err)
	assert.Equal(t, "alice", gotVerifier)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyTransfer_Handler_NoClaims(t *testing.T) {
	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/api/admin/orders/T1/verify-transfer", `{"payer_bank_last4":"6789"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("T1")

	err := NewAdminOrderHandler(&mockOrderService{}).VerifyTransfer(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestCancelOrder_Handler_StateConflict(t *testing.T) {
	svc := &mockOrderService{
		cancelFn: func(ctx context.Context, orderNo string) (*models.Order, error) {
			return nil, service.ErrAlreadyPaid
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders/T1/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderNo")
	c.SetParamValues("T1")

	err := NewAdminOrderHandler(svc).CancelOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

type stubParser struct {
	claims *service.Claims
}

func (s stubParser) ParseToken(token string) (*service.Claims, error) {
	return s.claims, nil
}
