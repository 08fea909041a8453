package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/notify"
	"github.com/teka-store/api/internal/platform/observability"
)

// Channel is one independent notification delivery mechanism. Send never
// panics and reports its outcome as an attempt; a failing channel must not
// disturb its siblings.
type Channel interface {
	Name() string
	Send(ctx context.Context, order domain.Order, text, plainText string) domain.NotificationAttempt
}

// NotificationService renders the status message for an order and fans it
// out across the configured channels.
type NotificationService interface {
	Dispatch(ctx context.Context, order domain.Order, status domain.OrderStatus) []domain.NotificationAttempt
	DispatchCustom(ctx context.Context, order domain.Order, text string) []domain.NotificationAttempt
}

// NotificationServiceDeps bundles collaborators required to construct a
// notification service instance.
type NotificationServiceDeps struct {
	Channels []Channel
}

type notificationService struct {
	channels []Channel
}

// NewNotificationService constructs the notification dispatcher.
func NewNotificationService(deps NotificationServiceDeps) (NotificationService, error) {
	if len(deps.Channels) == 0 {
		return nil, errors.New("notification service: at least one channel is required")
	}
	return &notificationService{channels: deps.Channels}, nil
}

// Dispatch renders the templated message for status and attempts delivery on
// every channel. Attempts are returned in channel order; failures never
// abort the remaining channels.
func (s *notificationService) Dispatch(ctx context.Context, order domain.Order, status domain.OrderStatus) []domain.NotificationAttempt {
	var text string
	if status == domain.StatusProcessing {
		text = notify.ProcessingMessage(order)
	} else {
		text = notify.StatusMessage(order.ID, status)
	}
	return s.send(ctx, order, text, text)
}

// DispatchCustom wraps an operator-written message with the order header and
// attempts delivery on every channel.
func (s *notificationService) DispatchCustom(ctx context.Context, order domain.Order, text string) []domain.NotificationAttempt {
	html := notify.CustomMessage(text, order.ID, order.CustomerName)
	plain := notify.CustomMessagePlain(text, order.ID, order.CustomerName)
	return s.send(ctx, order, html, plain)
}

func (s *notificationService) send(ctx context.Context, order domain.Order, text, plainText string) []domain.NotificationAttempt {
	logger := observability.FromContext(ctx)
	attempts := make([]domain.NotificationAttempt, 0, len(s.channels))
	for _, channel := range s.channels {
		attempt := channel.Send(ctx, order, text, plainText)
		if attempt.Status == domain.AttemptFailed {
			logger.Warn("notification attempt failed",
				zap.String("order_id", order.ID),
				zap.String("channel", attempt.Channel),
				zap.String("error", attempt.Err),
			)
		}
		attempts = append(attempts, attempt)
	}
	return attempts
}

// TelegramChannelDeps bundle the dependencies of the push channel.
type TelegramChannelDeps struct {
	Transport   notify.Transport
	CountryCode string
}

type telegramChannel struct {
	transport   notify.Transport
	countryCode string
}

// NewTelegramChannel constructs the bot-API push channel.
func NewTelegramChannel(deps TelegramChannelDeps) (Channel, error) {
	if deps.Transport == nil {
		return nil, errors.New("telegram channel: transport is required")
	}
	return &telegramChannel{transport: deps.Transport, countryCode: deps.CountryCode}, nil
}

func (c *telegramChannel) Name() string { return "telegram" }

func (c *telegramChannel) Send(ctx context.Context, order domain.Order, text, plainText string) domain.NotificationAttempt {
	attempt := domain.NotificationAttempt{OrderID: order.ID, Channel: c.Name()}
	recipient := notify.CanonicalPhone(order.Phone, c.countryCode)
	if recipient == "" {
		attempt.Status = domain.AttemptFailed
		attempt.Err = notify.ErrNoRecipient.Error()
		return attempt
	}
	if err := c.transport.SendMessage(ctx, recipient, text); err != nil {
		attempt.Status = domain.AttemptFailed
		attempt.Err = err.Error()
		return attempt
	}
	attempt.Status = domain.AttemptSent
	return attempt
}

// WhatsAppLinkChannelDeps bundle the dependencies of the deep-link channel.
type WhatsAppLinkChannelDeps struct {
	CountryCode string
}

type whatsappLinkChannel struct {
	countryCode string
}

// NewWhatsAppLinkChannel constructs the deep-link channel. It performs no
// network I/O; the generated link is handed back for an operator to open.
func NewWhatsAppLinkChannel(deps WhatsAppLinkChannelDeps) Channel {
	return &whatsappLinkChannel{countryCode: deps.CountryCode}
}

func (c *whatsappLinkChannel) Name() string { return "whatsapp-link" }

func (c *whatsappLinkChannel) Send(ctx context.Context, order domain.Order, text, plainText string) domain.NotificationAttempt {
	attempt := domain.NotificationAttempt{OrderID: order.ID, Channel: c.Name()}
	recipient := notify.CanonicalPhone(order.Phone, c.countryCode)
	if recipient == "" {
		attempt.Status = domain.AttemptFailed
		attempt.Err = notify.ErrNoRecipient.Error()
		return attempt
	}
	attempt.Status = domain.AttemptSent
	attempt.Link = notify.WhatsAppLink(recipient, plainText)
	return attempt
}
