package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/middleware"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminHandler manages admin accounts; all routes require super_admin.
type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) RegisterRoutes(admin *echo.Group) {
	g := admin.Group("/admins", middleware.RequireSuperAdmin())
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) Create(c echo.Context) error {
	var req dto.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	admin, err := h.svc.Create(c.Request().Context(), service.CreateAdminParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admin id")
	}

	var req dto.UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	admin, err := h.svc.Update(c.Request().Context(), uint(id), service.UpdateAdminParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admin id")
	}

	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id), claims.AdminID); err != nil {
		return adminError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func adminError(err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrAdminNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSelfDelete):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
