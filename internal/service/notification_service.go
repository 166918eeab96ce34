package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/mistatas/soporte-service/internal/config"
	"github.com/mistatas/soporte-service/internal/events"
)

const webhookTimeout = 5 * time.Second

// NotificationService forwards ticket events to an optional webhook and logs
// them. Delivery is best effort; a failed post never fails the mutation that
// produced the event.
type NotificationService struct {
	webhookURL string
	client     *fasthttp.Client
	logger     *zap.Logger
}

// NewNotificationService builds the service. With an empty webhook URL events
// are only logged.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		webhookURL: cfg.WebhookURL,
		client:     &fasthttp.Client{},
		logger:     logger,
	}
}

// Notify handles a single ticket event.
func (s *NotificationService) Notify(ctx context.Context, event events.Event) error {
	s.logger.Info("ticket event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
	)

	if s.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.webhookURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, webhookTimeout); err != nil {
		s.logger.Warn("webhook delivery failed",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
	return nil
}
