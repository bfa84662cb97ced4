package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

type SponsorHandler struct {
	svc service.SponsorService
}

func NewSponsorHandler(svc service.SponsorService) *SponsorHandler {
	return &SponsorHandler{svc: svc}
}

func (h *SponsorHandler) RegisterRoutes(e *echo.Echo, admin *echo.Group) {
	e.GET("/api/sponsors", h.ListActive)

	admin.GET("/sponsors", h.ListAll)
	admin.POST("/sponsors", h.Create)
	admin.PUT("/sponsors/:id", h.Update)
	admin.DELETE("/sponsors/:id", h.Delete)
}

func (h *SponsorHandler) ListActive(c echo.Context) error {
	sponsors, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sponsors)
}

func (h *SponsorHandler) ListAll(c echo.Context) error {
	sponsors, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sponsors)
}

func (h *SponsorHandler) Create(c echo.Context) error {
	var req dto.SponsorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sponsor, err := h.svc.Create(c.Request().Context(), req.ToParams())
	if err != nil {
		return sponsorError(err)
	}
	return c.JSON(http.StatusCreated, sponsor)
}

func (h *SponsorHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sponsor id")
	}

	var req dto.SponsorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sponsor, err := h.svc.Update(c.Request().Context(), uint(id), req.ToParams())
	if err != nil {
		return sponsorError(err)
	}
	return c.JSON(http.StatusOK, sponsor)
}

func (h *SponsorHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sponsor id")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return sponsorError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func sponsorError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrSponsorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
