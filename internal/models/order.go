package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Label returns the human-readable form used in admin views and exports.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pending payment"
	case OrderPaid:
		return "Paid"
	case OrderCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Attendee is a snapshot taken at purchase time. TicketName and TicketPrice
// are copied from the ticket type so later price edits never alter the order.
type Attendee struct {
	Name         string          `json:"name"`
	TicketTypeID uint            `json:"ticket_type_id"`
	TicketName   string          `json:"ticket_name"`
	TicketPrice  decimal.Decimal `json:"ticket_price"`
}

// AttendeeList is stored as a JSON column, not a join table.
type AttendeeList []Attendee

func (l AttendeeList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *AttendeeList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported attendee list type %T", value)
	}
}

type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderNo        string          `gorm:"size:32;uniqueIndex;not null" json:"order_no"`
	CustomerName   string          `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail  string          `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone  string          `gorm:"size:20" json:"customer_phone,omitempty"`
	Attendees      AttendeeList    `gorm:"type:text" json:"attendees"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	PaymentMethod  string          `gorm:"size:20" json:"payment_method,omitempty"`
	PayerBankLast4 string          `gorm:"size:4" json:"payer_bank_last4,omitempty"`
	VerifiedBy     string          `gorm:"size:50" json:"verified_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
