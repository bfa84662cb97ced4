package repository

import (
	"context"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/gorm"
)

type AdminRepository interface {
	FindActiveByUsername(ctx context.Context, username string) (*models.Admin, error)
	FindByID(ctx context.Context, id uint) (*models.Admin, error)
	FindAll(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Save(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindActiveByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", username, true).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Save(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Admin{}, id).Error
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}
