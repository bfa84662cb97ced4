package repository

import (
	"context"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository interface {
	FindActive(ctx context.Context) ([]models.TicketType, error)
	FindAll(ctx context.Context) ([]models.TicketType, error)
	FindByID(ctx context.Context, id uint) (*models.TicketType, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketType, error)
	Create(ctx context.Context, ticket *models.TicketType) error
	Save(ctx context.Context, ticket *models.TicketType) error
	Delete(ctx context.Context, id uint) error
	IncrementSold(ctx context.Context, tx *gorm.DB, id uint, count int) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) FindActive(ctx context.Context) ([]models.TicketType, error) {
	var tickets []models.TicketType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindAll(ctx context.Context) ([]models.TicketType, error) {
	var tickets []models.TicketType
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.TicketType, error) {
	var ticket models.TicketType
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByIDForUpdate acquires a row-level lock on the ticket type within the
// given transaction. This is what serializes concurrent order creation.
func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TicketType, error) {
	var ticket models.TicketType
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.TicketType) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) Save(ctx context.Context, ticket *models.TicketType) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TicketType{}, id).Error
}

func (r *ticketRepository) IncrementSold(ctx context.Context, tx *gorm.DB, id uint, count int) error {
	return tx.WithContext(ctx).
		Model(&models.TicketType{}).
		Where("id = ?", id).
		Update("sold_count", gorm.Expr("sold_count + ?", count)).Error
}
