package service

import (
	"context"
	"testing"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCreateTicket_Success(t *testing.T) {
	repo := &mockTicketRepo{
		createFn: func(ctx context.Context, ticket *models.TicketType) error {
			ticket.ID = 1
			return nil
		},
	}

	svc := NewTicketService(repo, &mockOrderRepo{}, nil)
	ticket, err := svc.Create(context.Background(), CreateTicketParams{
		Name:  "Early Bird",
		Price: decimal.NewFromInt(400),
		Quota: 100,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), ticket.ID)
	assert.True(t, ticket.IsActive, "new ticket types default to active")
}

func TestCreateTicket_EmptyName(t *testing.T) {
	svc := NewTicketService(&mockTicketRepo{}, &mockOrderRepo{}, nil)

	ticket, err := svc.Create(context.Background(), CreateTicketParams{
		Price: decimal.NewFromInt(400),
	})

	assert.Nil(t, ticket)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestCreateTicket_NegativePrice(t *testing.T) {
	svc := NewTicketService(&mockTicketRepo{}, &mockOrderRepo{}, nil)

	ticket, err := svc.Create(context.Background(), CreateTicketParams{
		Name:  "Early Bird",
		Price: decimal.NewFromInt(-1),
	})

	assert.Nil(t, ticket)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)
}

func TestCreateTicket_InvalidQuota(t *testing.T) {
	svc := NewTicketService(&mockTicketRepo{}, &mockOrderRepo{}, nil)

	ticket, err := svc.Create(context.Background(), CreateTicketParams{
		Name:  "Early Bird",
		Price: decimal.NewFromInt(400),
		Quota: -2,
	})

	assert.Nil(t, ticket)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "quota", ve.Field)
}

func TestCreateTicket_UnlimitedQuotaAllowed(t *testing.T) {
	repo := &mockTicketRepo{
		createFn: func(ctx context.Context, ticket *models.TicketType) error { return nil },
	}

	svc := NewTicketService(repo, &mockOrderRepo{}, nil)
	ticket, err := svc.Create(context.Background(), CreateTicketParams{
		Name:  "Student",
		Price: decimal.Zero,
		Quota: models.QuotaUnlimited,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.QuotaUnlimited, ticket.Quota)
}

func TestUpdateTicket_NotFound(t *testing.T) {
	repo := &mockTicketRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.TicketType, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewTicketService(repo, &mockOrderRepo{}, nil)
	name := "Renamed"
	ticket, err := svc.Update(context.Background(), 99, UpdateTicketParams{Name: &name})

	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestUpdateTicket_PartialFields(t *testing.T) {
	existing := &models.TicketType{
		Name:     "Early Bird",
		Price:    decimal.NewFromInt(400),
		Quota:    100,
		IsActive: true,
	}
	existing.ID = 1

	var saved *models.TicketType
	repo := &mockTicketRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.TicketType, error) {
			return existing, nil
		},
		saveFn: func(ctx context.Context, ticket *models.TicketType) error {
			saved = ticket
			return nil
		},
	}

	svc := NewTicketService(repo, &mockOrderRepo{}, nil)
	active := false
	ticket, err := svc.Update(context.Background(), 1, UpdateTicketParams{IsActive: &active})

	assert.NoError(t, err)
	assert.False(t, ticket.IsActive)
	assert.Equal(t, "Early Bird", saved.Name, "untouched fields survive")
	assert.True(t, saved.Price.Equal(decimal.NewFromInt(400)))
}

func TestDeleteTicket_BlockedByOrders(t *testing.T) {
	ticketRepo := &mockTicketRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.TicketType, error) {
			return &models.TicketType{Name: "Early Bird"}, nil
		},
	}
	orderRepo := &mockOrderRepo{
		countByTicketFn: func(ctx context.Context, ticketTypeID uint) (int64, error) {
			return 3, nil
		},
	}

	svc := NewTicketService(ticketRepo, orderRepo, nil)
	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrTicketInUse)
}

func TestDeleteTicket_Unreferenced(t *testing.T) {
	deleted := false
	ticketRepo := &mockTicketRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.TicketType, error) {
			return &models.TicketType{Name: "Early Bird"}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	orderRepo := &mockOrderRepo{
		countByTicketFn: func(ctx context.Context, ticketTypeID uint) (int64, error) {
			return 0, nil
		},
	}

	svc := NewTicketService(ticketRepo, orderRepo, nil)
	err := svc.Delete(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestListActive_NoCacheFallsThrough(t *testing.T) {
	repo := &mockTicketRepo{
		findActiveFn: func(ctx context.Context) ([]models.TicketType, error) {
			return []models.TicketType{{Name: "Early Bird"}, {Name: "Regular"}}, nil
		},
	}

	// nil cache behaves as a permanent miss
	svc := NewTicketService(repo, &mockOrderRepo{}, nil)
	tickets, err := svc.ListActive(context.Background())

	assert.NoError(t, err)
	assert.Len(t, tickets, 2)
}
