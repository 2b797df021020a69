package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"

	"github.com/Grizzway/SalonSync-sub000/config"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/websocket"
)

// EmailSender delivers messages through SMTP
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   from,
	}
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Accepts(msg Message) bool {
	return msg.Email != ""
}

func (s *EmailSender) Send(_ context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.Email, err)
	}
	return nil
}

// smsTypes are the notification kinds worth a text message
var smsTypes = map[string]bool{
	models.NotificationBookingConfirmation: true,
	models.NotificationCancellation:        true,
	models.NotificationReminder:            true,
}

// SMSSender delivers customer-facing messages as text messages through Twilio
type SMSSender struct {
	client *twilio.RestClient
	from   string
}

func NewSMSSender(cfg config.TwilioConfig) *SMSSender {
	return &SMSSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.From,
	}
}

func (s *SMSSender) Name() string { return "sms" }

func (s *SMSSender) Accepts(msg Message) bool {
	return msg.Phone != "" && smsTypes[msg.Type]
}

func (s *SMSSender) Send(_ context.Context, msg Message) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.Phone)
	params.SetFrom(s.from)
	params.SetBody(msg.Subject + "\n\n" + msg.Body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms to %s: %w", msg.Phone, err)
	}
	return nil
}

// Pusher pushes a live notification to connected clients
type Pusher interface {
	SendToUser(recipient string, notification websocket.Notification) error
	IsConnected(recipient string) bool
}

// InAppSender stores the notification for the recipient and pushes it when they are connected
type InAppSender struct {
	store NotificationStore
	hub   Pusher
}

func NewInAppSender(store NotificationStore, hub Pusher) *InAppSender {
	return &InAppSender{store: store, hub: hub}
}

func (s *InAppSender) Name() string { return "in_app" }

func (s *InAppSender) Accepts(msg Message) bool {
	return msg.Recipient != ""
}

func (s *InAppSender) Send(ctx context.Context, msg Message) error {
	notification := &models.Notification{
		Recipient: msg.Recipient,
		Title:     msg.Subject,
		Message:   msg.Body,
		Type:      msg.Type,
		Data:      msg.Data,
	}
	if err := s.store.Insert(ctx, notification); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	// offline recipients read the stored copy later
	if s.hub == nil || !s.hub.IsConnected(msg.Recipient) {
		return nil
	}
	// the stored copy already succeeded; a failed push must not store it twice on retry
	if err := s.hub.SendToUser(msg.Recipient, websocket.Notification{
		Type:    msg.Type,
		Title:   msg.Subject,
		Message: msg.Body,
		Data:    msg.Data,
	}); err != nil {
		log.Debug().Err(err).Str("recipient", msg.Recipient).Msg("Live push failed")
	}
	return nil
}
