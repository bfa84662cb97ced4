package handler

import (
	"errors"
	"net/http"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo, admin *echo.Group) {
	e.GET("/api/settings/payment-methods", h.PublicPaymentMethods)

	admin.GET("/settings/payment", h.GetPaymentSettings)
	admin.PUT("/settings/payment", h.UpdatePaymentSettings)
}

// PublicPaymentMethods returns only enabled methods; the payment page uses
// it to decide which options to offer.
func (h *SettingsHandler) PublicPaymentMethods(c echo.Context) error {
	methods, err := h.svc.PaymentMethods(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"methods": methods})
}

func (h *SettingsHandler) GetPaymentSettings(c echo.Context) error {
	settings, err := h.svc.GetPaymentSettings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdatePaymentSettings(c echo.Context) error {
	var req models.PaymentSettings
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.UpdatePaymentSettings(c.Request().Context(), req); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "saved"})
}
