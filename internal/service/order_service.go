package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/academic-forum/forum-tickets/internal/cache"
	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/monitoring"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"github.com/academic-forum/forum-tickets/pkg/ordno"
	"github.com/academic-forum/forum-tickets/pkg/rabbitmq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxAttendees bounds how many attendees a single order may register.
const MaxAttendees = 5

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	last4Pattern = regexp.MustCompile(`^[0-9]{4}$`)
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrTicketNotFound    = errors.New("ticket type not found")
	ErrTicketUnavailable = errors.New("ticket sold out or insufficient stock")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrOrderCancelled    = errors.New("order is cancelled")
	ErrOrderNotPaid      = errors.New("order is not paid yet")
	ErrAlreadyVerified   = errors.New("transfer already verified for this order")
)

// ValidationError names the request field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PaidOrderPublisher hands a paid order to the notification outbox. Delivery
// is best effort; publish failures never surface to the paying caller.
type PaidOrderPublisher interface {
	Publish(routingKey string, payload any) error
}

type AttendeeParam struct {
	Name         string
	TicketTypeID uint
}

type CreateOrderParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Attendees     []AttendeeParam
}

func (p CreateOrderParams) normalized() (CreateOrderParams, error) {
	p.CustomerName = strings.TrimSpace(p.CustomerName)
	p.CustomerEmail = strings.ToLower(strings.TrimSpace(p.CustomerEmail))
	p.CustomerPhone = strings.TrimSpace(p.CustomerPhone)

	if p.CustomerName == "" {
		return p, &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	}
	if !emailPattern.MatchString(p.CustomerEmail) {
		return p, &ValidationError{Field: "customer_email", Reason: "must be a valid email address"}
	}
	if len(p.Attendees) < 1 || len(p.Attendees) > MaxAttendees {
		return p, &ValidationError{
			Field:  "attendees",
			Reason: fmt.Sprintf("must contain between 1 and %d entries", MaxAttendees),
		}
	}

	attendees := make([]AttendeeParam, len(p.Attendees))
	copy(attendees, p.Attendees)
	for i := range attendees {
		attendees[i].Name = strings.TrimSpace(attendees[i].Name)
		if attendees[i].Name == "" {
			return p, &ValidationError{
				Field:  fmt.Sprintf("attendees[%d].name", i),
				Reason: "must not be empty",
			}
		}
		if attendees[i].TicketTypeID == 0 {
			return p, &ValidationError{
				Field:  fmt.Sprintf("attendees[%d].ticket_type_id", i),
				Reason: "must reference a ticket type",
			}
		}
	}
	p.Attendees = attendees
	return p, nil
}

type ListOrdersParams struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

type ListOrdersResult struct {
	Orders     []models.Order
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type OrderService interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, error)
	GetOrder(ctx context.Context, orderNo string) (*models.Order, error)
	PayOrder(ctx context.Context, orderNo string) (*models.Order, error)
	VerifyTransferPayment(ctx context.Context, orderNo, payerBankLast4, verifiedBy string) (*models.Order, error)
	CancelOrder(ctx context.Context, orderNo string) (*models.Order, error)
	ListOrders(ctx context.Context, params ListOrdersParams) (*ListOrdersResult, error)
	ExportOrders(ctx context.Context, status string) ([]models.Order, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	ticketRepo repository.TicketRepository
	publisher  PaidOrderPublisher
	tickets    *cache.TicketCache
}

func NewOrderService(orderRepo repository.OrderRepository, ticketRepo repository.TicketRepository, publisher PaidOrderPublisher, tickets *cache.TicketCache) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		ticketRepo: ticketRepo,
		publisher:  publisher,
		tickets:    tickets,
	}
}

// CreateOrder reserves inventory and records the order in one transaction.
// Ticket type rows are locked FOR UPDATE in ascending id order, so two orders
// touching the same types queue up instead of deadlocking, and the
// availability check cannot race the sold-count increment.
func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, error) {
	params, err := params.normalized()
	if err != nil {
		monitoring.OrderCreateFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	counts := make(map[uint]int, len(params.Attendees))
	for _, a := range params.Attendees {
		counts[a.TicketTypeID]++
	}
	ids := make([]uint, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var created *models.Order
	for attempt := 0; attempt < 3; attempt++ {
		err = s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			resolved := make(map[uint]*models.TicketType, len(ids))
			for _, id := range ids {
				ticket, ferr := s.ticketRepo.FindByIDForUpdate(ctx, tx, id)
				if ferr != nil {
					if errors.Is(ferr, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: id %d", ErrTicketNotFound, id)
					}
					return ferr
				}
				if !ticket.Available(counts[id]) {
					return fmt.Errorf("%w: %s", ErrTicketUnavailable, ticket.Name)
				}
				resolved[id] = ticket
			}

			// Snapshot name and price per attendee; the total is the sum of
			// snapshots, so mixed ticket types price correctly and later
			// price edits never touch this order.
			manifest := make(models.AttendeeList, 0, len(params.Attendees))
			total := decimal.Zero
			for _, a := range params.Attendees {
				ticket := resolved[a.TicketTypeID]
				manifest = append(manifest, models.Attendee{
					Name:         a.Name,
					TicketTypeID: ticket.ID,
					TicketName:   ticket.Name,
					TicketPrice:  ticket.Price,
				})
				total = total.Add(ticket.Price)
			}

			order := &models.Order{
				OrderNo:       ordno.Generate(),
				CustomerName:  params.CustomerName,
				CustomerEmail: params.CustomerEmail,
				CustomerPhone: params.CustomerPhone,
				Attendees:     manifest,
				TotalAmount:   total,
				Status:        models.OrderPending,
			}
			if cerr := s.orderRepo.Create(ctx, tx, order); cerr != nil {
				return cerr
			}

			for _, id := range ids {
				if ierr := s.ticketRepo.IncrementSold(ctx, tx, id, counts[id]); ierr != nil {
					return ierr
				}
			}

			created = order
			return nil
		})

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[OrderService] order number collision, retrying (attempt %d)", attempt+1)
			continue
		}
		break
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			monitoring.OrderCreateFailures.WithLabelValues("ticket_not_found").Inc()
		case errors.Is(err, ErrTicketUnavailable):
			monitoring.OrderCreateFailures.WithLabelValues("sold_out").Inc()
		default:
			monitoring.OrderCreateFailures.WithLabelValues("internal").Inc()
		}
		return nil, err
	}

	monitoring.OrdersCreated.Inc()
	for _, a := range created.Attendees {
		monitoring.TicketsSold.WithLabelValues(a.TicketName).Inc()
	}
	s.tickets.Invalidate(ctx)

	return created, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// PayOrder drives pending -> paid. It backs both the visitor's simulated
// payment and the admin's "payment received" confirmation for bank transfers.
func (s *orderService) PayOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	var paid *models.Order

	err := s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByOrderNoForUpdate(ctx, tx, orderNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		switch order.Status {
		case models.OrderPaid:
			return ErrAlreadyPaid
		case models.OrderCancelled:
			return ErrOrderCancelled
		}

		now := time.Now()
		if err := s.orderRepo.MarkPaid(ctx, tx, order.ID, now); err != nil {
			return err
		}

		order.Status = models.OrderPaid
		order.PaidAt = &now
		paid = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.OrdersPaid.Inc()
	s.notifyPaid(paid)

	return paid, nil
}

// notifyPaid hands the paid order to the broker without blocking the caller.
func (s *orderService) notifyPaid(order *models.Order) {
	if s.publisher == nil {
		return
	}
	snapshot := *order
	go func() {
		if err := s.publisher.Publish(rabbitmq.RoutingKeyOrderPaid, &snapshot); err != nil {
			monitoring.NotificationPublishFailures.Inc()
			log.Printf("[OrderService] failed to publish order.paid for %s: %v", snapshot.OrderNo, err)
		}
	}()
}

// VerifyTransferPayment records the reconciliation evidence for a bank
// transfer: the last 4 digits of the payer's account and who verified it.
// The order must already be paid, and verification happens at most once.
func (s *orderService) VerifyTransferPayment(ctx context.Context, orderNo, payerBankLast4, verifiedBy string) (*models.Order, error) {
	if !last4Pattern.MatchString(payerBankLast4) {
		return nil, &ValidationError{Field: "payer_bank_last4", Reason: "must be exactly 4 digits"}
	}

	var verified *models.Order

	err := s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByOrderNoForUpdate(ctx, tx, orderNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		switch order.Status {
		case models.OrderCancelled:
			return ErrOrderCancelled
		case models.OrderPending:
			return ErrOrderNotPaid
		}
		if order.PayerBankLast4 != "" {
			return ErrAlreadyVerified
		}

		if err := s.orderRepo.SetTransferVerification(ctx, tx, order.ID, payerBankLast4, verifiedBy); err != nil {
			return err
		}

		order.PaymentMethod = "transfer"
		order.PayerBankLast4 = payerBankLast4
		order.VerifiedBy = verifiedBy
		verified = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}

// CancelOrder marks a pending order cancelled. Inventory is not released:
// sold_count only ever grows, which keeps the oversell guarantee simple.
func (s *orderService) CancelOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	var cancelled *models.Order

	err := s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByOrderNoForUpdate(ctx, tx, orderNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		switch order.Status {
		case models.OrderPaid:
			return ErrAlreadyPaid
		case models.OrderCancelled:
			return ErrOrderCancelled
		}

		if err := s.orderRepo.MarkCancelled(ctx, tx, order.ID); err != nil {
			return err
		}

		order.Status = models.OrderCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *orderService) ListOrders(ctx context.Context, params ListOrdersParams) (*ListOrdersResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	filter := repository.OrderFilter{Status: params.Status, Search: params.Search}
	offset := (params.Page - 1) * params.PageSize

	orders, total, err := s.orderRepo.List(ctx, filter, offset, params.PageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))

	return &ListOrdersResult{
		Orders:     orders,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *orderService) ExportOrders(ctx context.Context, status string) ([]models.Order, error) {
	return s.orderRepo.ListAll(ctx, repository.OrderFilter{Status: status})
}
