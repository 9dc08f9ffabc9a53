// Package email sends transactional mail over SMTP.
package email

import (
	"fmt"
	"strings"

	"github.com/craftshop/backend/internal/domain/order"
	"github.com/craftshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier sends order lifecycle mail to buyers
type Notifier interface {
	// SendOrderConfirmation mails the buyer a summary of a settled order
	SendOrderConfirmation(to, name string, o *order.Order) error
}

// SMTPNotifier implements Notifier over a plain SMTP connection
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(cfg config.EmailConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendOrderConfirmation mails the buyer a summary of a settled order
func (n *SMTPNotifier) SendOrderConfirmation(to, name string, o *order.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Order confirmed: %s", o.GatewayOrderID))
	m.SetBody("text/html", buildConfirmationBody(name, o))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	n.logger.Info("Order confirmation sent",
		zap.String("gateway_order_id", o.GatewayOrderID),
		zap.String("recipient", to),
	)
	return nil
}

func buildConfirmationBody(name string, o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&b, "<p>Thanks for your purchase. Your order <b>%s</b> is confirmed.</p>", o.GatewayOrderID)
	b.WriteString("<ul>")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "<li>%s", item.Name)
		if item.Size != "" {
			fmt.Fprintf(&b, " (size %s)", item.Size)
		}
		fmt.Fprintf(&b, " x%d at ₹%s</li>", item.Quantity, item.Price.StringFixed(2))
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Total paid: <b>₹%s</b></p>", o.Amount.StringFixed(2))
	b.WriteString("<p>We will let you know when it ships.</p>")

	return b.String()
}

// NopNotifier discards all mail. Used when email is disabled in config.
type NopNotifier struct{}

// SendOrderConfirmation does nothing
func (NopNotifier) SendOrderConfirmation(string, string, *order.Order) error {
	return nil
}

// Ensure implementations satisfy Notifier
var (
	_ Notifier = (*SMTPNotifier)(nil)
	_ Notifier = (*NopNotifier)(nil)
)
