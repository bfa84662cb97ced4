package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotaUnlimited marks a ticket type that never sells out.
const QuotaUnlimited = -1

type TicketType struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quota       int             `gorm:"not null;default:-1" json:"quota"`
	SoldCount   int             `gorm:"not null;default:0" json:"sold_count"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Available reports whether count more tickets of this type can be sold.
func (t *TicketType) Available(count int) bool {
	if !t.IsActive {
		return false
	}
	if t.Quota == QuotaUnlimited {
		return true
	}
	return t.Quota-t.SoldCount >= count
}
