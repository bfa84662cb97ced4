// Package notifier turns order.paid messages into confirmation emails.
// Delivery is best effort: a failed send is logged and counted, never
// retried into the payment path.
package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/monitoring"
	"github.com/domodwyer/mailyak/v3"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	mail := mailyak.New(m.host+":"+m.port, auth)
	mail.From(m.from)
	mail.To(to)
	mail.Subject(subject)
	mail.Plain().Set(body)

	if err := mail.Send(); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

type Worker struct {
	mailer Mailer
}

func NewWorker(mailer Mailer) *Worker {
	return &Worker{mailer: mailer}
}

// Start consumes paid orders until the channel closes.
func (w *Worker) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			w.handle(msg)
		}
		log.Println("[Notifier] channel closed, stopping worker")
	}()
}

func (w *Worker) handle(msg amqp.Delivery) {
	var order models.Order
	if err := json.Unmarshal(msg.Body, &order); err != nil {
		log.Printf("[Notifier] failed to unmarshal order: %v", err)
		msg.Nack(false, false)
		return
	}

	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderNo)
	if err := w.mailer.Send(order.CustomerEmail, subject, ConfirmationBody(&order)); err != nil {
		monitoring.EmailDeliveryFailures.Inc()
		log.Printf("[Notifier] failed to email %s for order %s: %v", order.CustomerEmail, order.OrderNo, err)
		// Best effort: drop rather than requeue, a broken mailbox would
		// loop forever.
		msg.Nack(false, false)
		return
	}

	log.Printf("[Notifier] confirmation sent for order %s", order.OrderNo)
	msg.Ack(false)
}

// ConfirmationBody renders the plain-text confirmation with the attendee
// manifest and the snapshotted prices.
func ConfirmationBody(order *models.Order) string {
	var b strings.Builder

	b.WriteString("Order Confirmation / 订单确认\n")
	b.WriteString("================================\n\n")
	b.WriteString("Thank you for your registration! Your order has been paid successfully.\n")
	b.WriteString("感谢您的报名！您的订单已成功支付。\n\n")

	fmt.Fprintf(&b, "Order No: %s\n", order.OrderNo)
	if order.PaidAt != nil {
		fmt.Fprintf(&b, "Paid at:  %s\n", order.PaidAt.Format("2006-01-02 15:04:05"))
	}
	b.WriteString("\nAttendees:\n")
	for _, a := range order.Attendees {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", a.Name, a.TicketName, a.TicketPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.TotalAmount.StringFixed(2))
	b.WriteString("\nThis is an automated email. Please do not reply directly.\n")

	return b.String()
}
