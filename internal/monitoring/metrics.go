package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total orders created",
		},
	)

	OrderCreateFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_create_failures_total",
			Help: "Total rejected order creations",
		},
		[]string{"reason"},
	)

	OrdersPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_paid_total",
			Help: "Total orders transitioned to paid",
		},
	)

	TicketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Tickets sold per ticket type",
		},
		[]string{"ticket"},
	)

	NotificationPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_notification_publish_failures_total",
			Help: "Paid-order notifications that could not be handed to the broker",
		},
	)

	EmailDeliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_email_delivery_failures_total",
			Help: "Confirmation emails that failed to send",
		},
	)
)
