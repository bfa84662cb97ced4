package repository

import (
	"context"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/gorm"
)

type ConferenceRepository interface {
	FindActive(ctx context.Context) (*models.Conference, error)
	FindAll(ctx context.Context) ([]models.Conference, error)
	FindByID(ctx context.Context, id uint) (*models.Conference, error)
	Create(ctx context.Context, conf *models.Conference) error
	Save(ctx context.Context, conf *models.Conference) error
	Delete(ctx context.Context, id uint) error
	// Activate marks one conference active and every other inactive,
	// in a single transaction.
	Activate(ctx context.Context, id uint) error
}

type conferenceRepository struct {
	db *gorm.DB
}

func NewConferenceRepository(db *gorm.DB) ConferenceRepository {
	return &conferenceRepository{db: db}
}

func (r *conferenceRepository) FindActive(ctx context.Context) (*models.Conference, error) {
	var conf models.Conference
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&conf).Error; err != nil {
		return nil, err
	}
	return &conf, nil
}

func (r *conferenceRepository) FindAll(ctx context.Context) ([]models.Conference, error) {
	var confs []models.Conference
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&confs).Error; err != nil {
		return nil, err
	}
	return confs, nil
}

func (r *conferenceRepository) FindByID(ctx context.Context, id uint) (*models.Conference, error) {
	var conf models.Conference
	if err := r.db.WithContext(ctx).First(&conf, id).Error; err != nil {
		return nil, err
	}
	return &conf, nil
}

func (r *conferenceRepository) Create(ctx context.Context, conf *models.Conference) error {
	return r.db.WithContext(ctx).Create(conf).Error
}

func (r *conferenceRepository) Save(ctx context.Context, conf *models.Conference) error {
	return r.db.WithContext(ctx).Save(conf).Error
}

func (r *conferenceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Conference{}, id).Error
}

func (r *conferenceRepository) Activate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Conference{}).
			Where("id <> ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conference{}).
			Where("id = ?", id).
			Update("is_active", true).Error
	})
}
