package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/middleware"
	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminOrderHandler is the back-office order surface: paginated listing, CSV
// export, payment confirmation, transfer verification and cancellation.
type AdminOrderHandler struct {
	svc service.OrderService
}

func NewAdminOrderHandler(svc service.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{svc: svc}
}

func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/export", h.ExportOrders)
	g.POST("/orders/:orderNo/confirm-payment", h.ConfirmPayment)
	g.POST("/orders/:orderNo/verify-transfer", h.VerifyTransfer)
	g.POST("/orders/:orderNo/cancel", h.CancelOrder)
}

func (h *AdminOrderHandler) ListOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	result, err := h.svc.ListOrders(c.Request().Context(), service.ListOrdersParams{
		Page:     page,
		PageSize: pageSize,
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return orderError(err)
	}

	resp := dto.ListOrdersResponse{
		Orders:     make([]dto.OrderResponse, len(result.Orders)),
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
	for i := range result.Orders {
		resp.Orders[i] = dto.ToOrderResponse(&result.Orders[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AdminOrderHandler) ExportOrders(c echo.Context) error {
	orders, err := h.svc.ExportOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return orderError(err)
	}

	body, err := buildOrderCSV(orders)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=orders_%d.csv`, time.Now().Unix()))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", body)
}

// buildOrderCSV flattens orders into spreadsheet rows, one line per order,
// attendees joined into a single cell. The UTF-8 BOM keeps Excel happy.
func buildOrderCSV(orders []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	header := []string{
		"Order No", "Customer", "Email", "Phone", "Attendees",
		"Total", "Status", "Payment Method", "Payer Bank Last 4",
		"Verified By", "Paid At", "Created At",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, o := range orders {
		attendees := ""
		for i, a := range o.Attendees {
			if i > 0 {
				attendees += "; "
			}
			attendees += fmt.Sprintf("%s (%s %s)", a.Name, a.TicketName, a.TicketPrice.StringFixed(2))
		}

		paidAt := ""
		if o.PaidAt != nil {
			paidAt = o.PaidAt.Format(time.RFC3339)
		}

		row := []string{
			o.OrderNo,
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			attendees,
			o.TotalAmount.StringFixed(2),
			o.Status.Label(),
			o.PaymentMethod,
			o.PayerBankLast4,
			o.VerifiedBy,
			paidAt,
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConfirmPayment marks a bank-transfer order paid. Same transition as the
// visitor's pay action, initiated by an admin.
func (h *AdminOrderHandler) ConfirmPayment(c echo.Context) error {
	order, err := h.svc.PayOrder(c.Request().Context(), c.Param("orderNo"))
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *AdminOrderHandler) VerifyTransfer(c echo.Context) error {
	var req dto.VerifyTransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	order, err := h.svc.VerifyTransferPayment(
		c.Request().Context(), c.Param("orderNo"), req.PayerBankLast4, claims.Username)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *AdminOrderHandler) CancelOrder(c echo.Context) error {
	order, err := h.svc.CancelOrder(c.Request().Context(), c.Param("orderNo"))
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
