package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows admin order queries. Search matches order number,
// customer name and customer email as substrings.
type OrderFilter struct {
	Status string
	Search string
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	FindByOrderNoForUpdate(ctx context.Context, tx *gorm.DB, orderNo string) (*models.Order, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint, paidAt time.Time) error
	MarkCancelled(ctx context.Context, tx *gorm.DB, orderID uint) error
	SetTransferVerification(ctx context.Context, tx *gorm.DB, orderID uint, last4, verifiedBy string) error
	List(ctx context.Context, filter OrderFilter, offset, limit int) ([]models.Order, int64, error)
	ListAll(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	CountByTicketType(ctx context.Context, ticketTypeID uint) (int64, error)
	GetDB() *gorm.DB
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByOrderNoForUpdate locks the order row; status transitions for one
// order are serialized through this lock.
func (r *orderRepository) FindByOrderNoForUpdate(ctx context.Context, tx *gorm.DB, orderNo string) (*models.Order, error) {
	var order models.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_no = ?", orderNo).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint, paidAt time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{"status": models.OrderPaid, "paid_at": paidAt}).Error
}

func (r *orderRepository) MarkCancelled(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", models.OrderCancelled).Error
}

func (r *orderRepository) SetTransferVerification(ctx context.Context, tx *gorm.DB, orderID uint, last4, verifiedBy string) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"payment_method":   "transfer",
			"payer_bank_last4": last4,
			"verified_by":      verifiedBy,
		}).Error
}

func (r *orderRepository) applyFilter(q *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("order_no ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			pattern, pattern, pattern)
	}
	return q
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter, offset, limit int) ([]models.Order, int64, error) {
	var total int64
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.Order{}), filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) ListAll(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.Order{}), filter)
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) CountByTicketType(ctx context.Context, ticketTypeID uint) (int64, error) {
	var count int64
	// Attendees are a JSON snapshot, so reference checks go through the
	// manifest column rather than a foreign key.
	needle := fmt.Sprintf(`[{"ticket_type_id":%d}]`, ticketTypeID)
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("attendees::jsonb @> ?", needle).
		Count(&count).Error
	return count, err
}
