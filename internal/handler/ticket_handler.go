package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo, admin *echo.Group) {
	e.GET("/api/tickets", h.ListActive)

	admin.GET("/tickets", h.ListAll)
	admin.POST("/tickets", h.Create)
	admin.PUT("/tickets/:id", h.Update)
	admin.DELETE("/tickets/:id", h.Delete)
}

func (h *TicketHandler) ListActive(c echo.Context) error {
	tickets, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) ListAll(c echo.Context) error {
	tickets, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) Create(c echo.Context) error {
	var req dto.CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	quota := models.QuotaUnlimited
	if req.Quota != nil {
		quota = *req.Quota
	}

	ticket, err := h.svc.Create(c.Request().Context(), service.CreateTicketParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quota:       quota,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return ticketError(err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	var req dto.UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ticket, err := h.svc.Update(c.Request().Context(), uint(id), service.UpdateTicketParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quota:       req.Quota,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return ticketError(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return ticketError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func ticketError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrTicketNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTicketInUse):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
