package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

type ConferenceHandler struct {
	svc service.ConferenceService
}

func NewConferenceHandler(svc service.ConferenceService) *ConferenceHandler {
	return &ConferenceHandler{svc: svc}
}

func (h *ConferenceHandler) RegisterRoutes(e *echo.Echo, admin *echo.Group) {
	e.GET("/api/conference", h.GetActive)

	admin.GET("/conferences", h.ListAll)
	admin.POST("/conferences", h.Create)
	admin.PUT("/conferences/:id", h.Update)
	admin.DELETE("/conferences/:id", h.Delete)
}

func (h *ConferenceHandler) GetActive(c echo.Context) error {
	conf, err := h.svc.GetActive(c.Request().Context())
	if err != nil {
		return conferenceError(err)
	}
	return c.JSON(http.StatusOK, conf)
}

func (h *ConferenceHandler) ListAll(c echo.Context) error {
	confs, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, confs)
}

func (h *ConferenceHandler) Create(c echo.Context) error {
	var req dto.ConferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	conf, err := h.svc.Create(c.Request().Context(), req.ToParams())
	if err != nil {
		return conferenceError(err)
	}
	return c.JSON(http.StatusCreated, conf)
}

func (h *ConferenceHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid conference id")
	}

	var req dto.ConferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	conf, err := h.svc.Update(c.Request().Context(), uint(id), req.ToParams())
	if err != nil {
		return conferenceError(err)
	}
	return c.JSON(http.StatusOK, conf)
}

func (h *ConferenceHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid conference id")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return conferenceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func conferenceError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrConferenceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
