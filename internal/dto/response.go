package dto

import (
	"time"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID             uint                `json:"id"`
	OrderNo        string              `json:"order_no"`
	CustomerName   string              `json:"customer_name"`
	CustomerEmail  string              `json:"customer_email"`
	CustomerPhone  string              `json:"customer_phone,omitempty"`
	Attendees      models.AttendeeList `json:"attendees"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Status         models.OrderStatus  `json:"status"`
	StatusLabel    string              `json:"status_label"`
	PaidAt         *time.Time          `json:"paid_at,omitempty"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	PayerBankLast4 string              `json:"payer_bank_last4,omitempty"`
	VerifiedBy     string              `json:"verified_by,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

func ToOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		OrderNo:        o.OrderNo,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		Attendees:      o.Attendees,
		TotalAmount:    o.TotalAmount,
		Status:         o.Status,
		StatusLabel:    o.Status.Label(),
		PaidAt:         o.PaidAt,
		PaymentMethod:  o.PaymentMethod,
		PayerBankLast4: o.PayerBankLast4,
		VerifiedBy:     o.VerifiedBy,
		CreatedAt:      o.CreatedAt,
	}
}

type ListOrdersResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
