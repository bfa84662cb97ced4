package repository

import (
	"context"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/gorm"
)

type SponsorRepository interface {
	FindActive(ctx context.Context) ([]models.Sponsor, error)
	FindAll(ctx context.Context) ([]models.Sponsor, error)
	FindByID(ctx context.Context, id uint) (*models.Sponsor, error)
	Create(ctx context.Context, sponsor *models.Sponsor) error
	Save(ctx context.Context, sponsor *models.Sponsor) error
	Delete(ctx context.Context, id uint) error
}

type sponsorRepository struct {
	db *gorm.DB
}

func NewSponsorRepository(db *gorm.DB) SponsorRepository {
	return &sponsorRepository{db: db}
}

func (r *sponsorRepository) FindActive(ctx context.Context) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category, sort_order, id").
		Find(&sponsors).Error
	if err != nil {
		return nil, err
	}
	return sponsors, nil
}

func (r *sponsorRepository) FindAll(ctx context.Context) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	if err := r.db.WithContext(ctx).Order("category, sort_order, id").Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

func (r *sponsorRepository) FindByID(ctx context.Context, id uint) (*models.Sponsor, error) {
	var sponsor models.Sponsor
	if err := r.db.WithContext(ctx).First(&sponsor, id).Error; err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (r *sponsorRepository) Create(ctx context.Context, sponsor *models.Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

func (r *sponsorRepository) Save(ctx context.Context, sponsor *models.Sponsor) error {
	return r.db.WithContext(ctx).Save(sponsor).Error
}

func (r *sponsorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Sponsor{}, id).Error
}
