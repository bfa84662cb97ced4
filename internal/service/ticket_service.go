package service

import (
	"context"
	"errors"

	"github.com/academic-forum/forum-tickets/internal/cache"
	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrTicketInUse guards deletion: a ticket type referenced by any order can
// only be disabled, never removed, so historical manifests stay resolvable.
var ErrTicketInUse = errors.New("ticket type has orders and cannot be deleted, disable it instead")

type CreateTicketParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quota       int
	IsActive    *bool
}

type UpdateTicketParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quota       *int
	IsActive    *bool
}

type TicketService interface {
	ListActive(ctx context.Context) ([]models.TicketType, error)
	ListAll(ctx context.Context) ([]models.TicketType, error)
	Get(ctx context.Context, id uint) (*models.TicketType, error)
	Create(ctx context.Context, params CreateTicketParams) (*models.TicketType, error)
	Update(ctx context.Context, id uint, params UpdateTicketParams) (*models.TicketType, error)
	Delete(ctx context.Context, id uint) error
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	orderRepo  repository.OrderRepository
	tickets    *cache.TicketCache
}

func NewTicketService(ticketRepo repository.TicketRepository, orderRepo repository.OrderRepository, tickets *cache.TicketCache) TicketService {
	return &ticketService{ticketRepo: ticketRepo, orderRepo: orderRepo, tickets: tickets}
}

// ListActive serves the public ticket list (active types, cheapest first),
// read through the Redis cache when one is configured.
func (s *ticketService) ListActive(ctx context.Context) ([]models.TicketType, error) {
	if cached, ok := s.tickets.GetActive(ctx); ok {
		return cached, nil
	}

	tickets, err := s.ticketRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	s.tickets.SetActive(ctx, tickets)
	return tickets, nil
}

func (s *ticketService) ListAll(ctx context.Context) ([]models.TicketType, error) {
	return s.ticketRepo.FindAll(ctx)
}

func (s *ticketService) Get(ctx context.Context, id uint) (*models.TicketType, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) Create(ctx context.Context, params CreateTicketParams) (*models.TicketType, error) {
	if params.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if params.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if params.Quota < models.QuotaUnlimited {
		return nil, &ValidationError{Field: "quota", Reason: "must be -1 (unlimited) or a non-negative count"}
	}

	ticket := &models.TicketType{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Quota:       params.Quota,
		IsActive:    true,
	}
	if params.IsActive != nil {
		ticket.IsActive = *params.IsActive
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.tickets.Invalidate(ctx)
	return ticket, nil
}

func (s *ticketService) Update(ctx context.Context, id uint, params UpdateTicketParams) (*models.TicketType, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		ticket.Name = *params.Name
	}
	if params.Description != nil {
		ticket.Description = *params.Description
	}
	if params.Price != nil {
		if params.Price.IsNegative() {
			return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
		}
		ticket.Price = *params.Price
	}
	if params.Quota != nil {
		if *params.Quota < models.QuotaUnlimited {
			return nil, &ValidationError{Field: "quota", Reason: "must be -1 (unlimited) or a non-negative count"}
		}
		ticket.Quota = *params.Quota
	}
	if params.IsActive != nil {
		ticket.IsActive = *params.IsActive
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	s.tickets.Invalidate(ctx)
	return ticket, nil
}

func (s *ticketService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	refs, err := s.orderRepo.CountByTicketType(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrTicketInUse
	}

	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.tickets.Invalidate(ctx)
	return nil
}
