package handler

import (
	"errors"
	"net/http"

	"github.com/academic-forum/forum-tickets/internal/dto"
	"github.com/academic-forum/forum-tickets/internal/middleware"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AdminService
}

func NewAuthHandler(svc service.AdminService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/me", h.Me, middleware.RequireAdmin(h.svc))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	token, admin, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Admin: admin})
}

func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	admin, err := h.svc.GetByID(c.Request().Context(), claims.AdminID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "admin not found")
	}
	return c.JSON(http.StatusOK, admin)
}
