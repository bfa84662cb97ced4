package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"gorm.io/gorm"
)

// defaultPaymentSettings seeds the settings row the first time it is read.
var defaultPaymentSettings = models.PaymentSettings{
	Methods: []models.PaymentMethod{
		{ID: "simulated", Name: "Online payment", Enabled: true},
		{ID: "transfer", Name: "Bank transfer", Enabled: false, BankInfo: &models.BankInfo{}},
	},
}

type SettingsService interface {
	// PaymentMethods returns only enabled methods, for the public payment page.
	PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error)
	UpdatePaymentSettings(ctx context.Context, settings models.PaymentSettings) error
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error) {
	row, err := s.repo.Get(ctx, models.SettingPaymentMethods)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.UpdatePaymentSettings(ctx, defaultPaymentSettings); err != nil {
				return nil, err
			}
			settings := defaultPaymentSettings
			return &settings, nil
		}
		return nil, err
	}

	var settings models.PaymentSettings
	if err := json.Unmarshal([]byte(row.Value), &settings); err != nil {
		return nil, fmt.Errorf("decode payment settings: %w", err)
	}
	return &settings, nil
}

func (s *settingsService) UpdatePaymentSettings(ctx context.Context, settings models.PaymentSettings) error {
	for _, m := range settings.Methods {
		if m.ID == "" {
			return &ValidationError{Field: "methods", Reason: "every method needs an id"}
		}
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode payment settings: %w", err)
	}
	return s.repo.Put(ctx, models.SettingPaymentMethods, string(raw))
}

func (s *settingsService) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	settings, err := s.GetPaymentSettings(ctx)
	if err != nil {
		return nil, err
	}

	enabled := make([]models.PaymentMethod, 0, len(settings.Methods))
	for _, m := range settings.Methods {
		if m.Enabled {
			enabled = append(enabled, m)
		}
	}
	return enabled, nil
}
