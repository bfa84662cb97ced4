package handler

import (
	"errors"
	"net/http"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

// OrderHandler exposes the public registration flow: create an order, look it
// up, pay it.
type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	orders := e.Group("/api/orders")
	orders.POST("", h.CreateOrder)
	orders.GET("/:orderNo", h.GetOrder)
	orders.POST("/:orderNo/pay", h.PayOrder)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), req.ToParams())
	if err != nil {
		return orderError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.svc.GetOrder(c.Request().Context(), c.Param("orderNo"))
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) PayOrder(c echo.Context) error {
	order, err := h.svc.PayOrder(c.Request().Context(), c.Param("orderNo"))
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// orderError maps lifecycle errors onto HTTP codes: missing resources are
// 404, validation and state conflicts are 400.
func orderError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrTicketUnavailable),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrOrderCancelled),
		errors.Is(err, service.ErrOrderNotPaid),
		errors.Is(err, service.ErrAlreadyVerified):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
