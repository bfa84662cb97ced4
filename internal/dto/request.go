package dto

import (
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/shopspring/decimal"
)

type AttendeeRequest struct {
	Name         string `json:"name"`
	TicketTypeID uint   `json:"ticket_type_id"`
}

// CreateOrderRequest accepts two body shapes: the current per-attendee form,
// and the legacy single-ticket form (ticket_type_id + quantity). ToParams
// folds the legacy shape into attendees so the lifecycle engine only ever
// sees one representation.
type CreateOrderRequest struct {
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone"`
	Attendees     []AttendeeRequest `json:"attendees"`

	// Legacy form.
	TicketTypeID uint `json:"ticket_type_id"`
	Quantity     int  `json:"quantity"`
}

func (r *CreateOrderRequest) ToParams() service.CreateOrderParams {
	params := service.CreateOrderParams{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}

	if len(r.Attendees) == 0 && r.TicketTypeID != 0 {
		quantity := r.Quantity
		if quantity < 1 {
			quantity = 1
		}
		// The legacy form carries no attendee names; every seat is
		// registered under the contact.
		for i := 0; i < quantity; i++ {
			params.Attendees = append(params.Attendees, service.AttendeeParam{
				Name:         r.CustomerName,
				TicketTypeID: r.TicketTypeID,
			})
		}
		return params
	}

	for _, a := range r.Attendees {
		params.Attendees = append(params.Attendees, service.AttendeeParam{
			Name:         a.Name,
			TicketTypeID: a.TicketTypeID,
		})
	}
	return params
}

type VerifyTransferRequest struct {
	PayerBankLast4 string `json:"payer_bank_last4"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTicketRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quota       *int            `json:"quota"`
	IsActive    *bool           `json:"is_active"`
}

type UpdateTicketRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quota       *int             `json:"quota"`
	IsActive    *bool            `json:"is_active"`
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type UpdateAdminRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type SponsorRequest struct {
	NameZH    *string `json:"name_zh"`
	NameEN    *string `json:"name_en"`
	Abbr      *string `json:"abbr"`
	Category  *string `json:"category"`
	LogoURL   *string `json:"logo_url"`
	Website   *string `json:"website"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

func (r *SponsorRequest) ToParams() service.SponsorParams {
	return service.SponsorParams{
		NameZH:    r.NameZH,
		NameEN:    r.NameEN,
		Abbr:      r.Abbr,
		Category:  r.Category,
		LogoURL:   r.LogoURL,
		Website:   r.Website,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive,
	}
}

type ConferenceRequest struct {
	NameZH       *string `json:"name_zh"`
	NameEN       *string `json:"name_en"`
	SubtitleZH   *string `json:"subtitle_zh"`
	SubtitleEN   *string `json:"subtitle_en"`
	DateStart    *string `json:"date_start"`
	DateEnd      *string `json:"date_end"`
	CheckinTime  *string `json:"checkin_time"`
	VenueZH      *string `json:"venue_zh"`
	VenueEN      *string `json:"venue_en"`
	ContactEmail *string `json:"contact_email"`
	IsActive     *bool   `json:"is_active"`
}

func (r *ConferenceRequest) ToParams() service.ConferenceParams {
	return service.ConferenceParams{
		NameZH:       r.NameZH,
		NameEN:       r.NameEN,
		SubtitleZH:   r.SubtitleZH,
		SubtitleEN:   r.SubtitleEN,
		DateStart:    r.DateStart,
		DateEnd:      r.DateEnd,
		CheckinTime:  r.CheckinTime,
		VenueZH:      r.VenueZH,
		VenueEN:      r.VenueEN,
		ContactEmail: r.ContactEmail,
		IsActive:     r.IsActive,
	}
}
