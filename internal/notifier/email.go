package notifier

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

// EmailNotifier sends order confirmation emails over SMTP. Without SMTP
// credentials it runs disabled and only logs what it would have sent.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewEmail(cfg SMTPConfig) *EmailNotifier {
	if cfg.User == "" || cfg.Pass == "" {
		log.Println("SMTP credentials not configured, email sending disabled")
		return &EmailNotifier{from: cfg.From}
	}

	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

var _ port.Notifier = (*EmailNotifier)(nil)

func (n *EmailNotifier) OrderConfirmation(_ context.Context, c domain.OrderConfirmation) error {
	if n.dialer == nil {
		log.Printf("email disabled, skipping confirmation for order %s to %s", c.OrderID, c.Email)
		return nil
	}

	method := "Bank Transfer"
	if c.PaymentMethod == domain.PaymentMethodCOD {
		method = "Cash on Delivery"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", c.Email)
	m.SetHeader("Subject", "Order Confirmation - NovaMart")
	m.SetBody("text/html", fmt.Sprintf(`
		<h1>Thank you for your order!</h1>
		<p>Order ID: %s</p>
		<p>Payment Method: %s</p>
		<p>We'll process your order and send you tracking information soon.</p>
	`, c.OrderID, method))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	return nil
}
