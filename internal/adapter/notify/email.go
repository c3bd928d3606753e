package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/format"
)

// Config holds the SMTP settings used for notifications
type Config struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     string `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`
	SenderEmail  string `yaml:"sender_email"`
	Recipient    string `yaml:"recipient"`
}

// sendFunc delivers a prepared message
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// EmailNotifier handles all-time-high notifications via SMTP
type EmailNotifier struct {
	cfg    Config
	logger *logrus.Logger
	send   sendFunc
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg Config, logger *logrus.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// NotifyAllTimeHigh sends a message announcing a new net worth record
func (n *EmailNotifier) NotifyAllTimeHigh(ctx context.Context, snapshot domain.Snapshot, previousHigh domain.Amount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := BuildAllTimeHighEmail(n.cfg.SenderEmail, n.cfg.Recipient, snapshot, previousHigh)

	addr := fmt.Sprintf("%s:%s", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUsername, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	if err := n.send(e, addr, auth); err != nil {
		n.logger.Errorf("Failed to send email to %s: %v", n.cfg.Recipient, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Infof("Email sent to %s: %s", n.cfg.Recipient, e.Subject)
	return nil
}

// BuildAllTimeHighEmail prepares the notification message
func BuildAllTimeHighEmail(from, to string, snapshot domain.Snapshot, previousHigh domain.Amount) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = "New Net Worth All-Time High"

	gain := snapshot.OverallNet.Sub(previousHigh.Decimal)
	body := fmt.Sprintf(
		"Your net worth reached %s on %s.\n"+
			"Previous high: %s (+%s)\n"+
			"Total assets: %s\n"+
			"Total debt: %s\n",
		format.Money(snapshot.OverallNet.Decimal, snapshot.Currency),
		snapshot.Date.Format("2006-01-02"),
		format.Money(previousHigh.Decimal, snapshot.Currency),
		format.Money(gain, snapshot.Currency),
		format.Money(snapshot.TotalAssets.Decimal, snapshot.Currency),
		format.Money(snapshot.TotalDebt.Decimal, snapshot.Currency),
	)
	body += "\nKeep it up!\nFinance Dashboard"
	e.Text = []byte(body)

	return e
}

// Nop is a Notifier that only logs
type Nop struct {
	Logger *logrus.Logger
}

// NotifyAllTimeHigh logs the record
func (n Nop) NotifyAllTimeHigh(_ context.Context, snapshot domain.Snapshot, previousHigh domain.Amount) error {
	if n.Logger != nil {
		n.Logger.WithFields(logrus.Fields{
			"net":           snapshot.OverallNet.String(),
			"previous_high": previousHigh.String(),
		}).Info("New all-time high")
	}
	return nil
}
