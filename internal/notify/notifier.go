package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-data-context/internal/config"
	"github.com/MKhiriev/go-data-context/internal/logger"
	"github.com/MKhiriev/go-data-context/internal/utils"
	"github.com/MKhiriev/go-data-context/models"
	"github.com/rs/zerolog"
)

// DeliveryStatus is the outcome of a single notification attempt.
type DeliveryStatus struct {
	// ID correlates the log entries of this delivery.
	ID string
	// Delivered is true when the webhook answered 200.
	Delivered bool
	// StatusCode is the HTTP status of the response, zero when no response
	// was received.
	StatusCode int
	// Err describes the failure; it wraps one of ErrWebhookUnreachable,
	// ErrWebhookRejected or ErrDeliveryFailed. Nil on success.
	Err error
	// Skipped is true when no request was made because the caller's
	// notification policy filtered the result out.
	Skipped bool
}

// SlackNotifier posts validation results to a Slack incoming webhook.
type SlackNotifier struct {
	client   *utils.HTTPClient
	webhook  string
	// endpoint is the webhook without its path, which holds the token.
	endpoint string
	ids      *utils.UUIDGenerator
	now      func() time.Time

	logger *logger.Logger
}

var _ Sender = (*SlackNotifier)(nil)

// NewSlackNotifier constructs a notifier for cfg.WebhookURL. Requests time
// out after cfg.RequestTimeout when it is positive.
//
// Returns [ErrEmptyWebhook] when no URL is configured and
// [ErrInvalidWebhook] when it lacks a scheme or host.
func NewSlackNotifier(cfg config.Notifier, log *logger.Logger) (*SlackNotifier, error) {
	webhook, endpoint, err := normalizeWebhook(cfg.WebhookURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	return &SlackNotifier{
		client:   utils.NewHTTPClient(cfg.RequestTimeout),
		webhook:  webhook,
		endpoint: endpoint,
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
		logger:   log,
	}, nil
}

func normalizeWebhook(raw string) (webhook, endpoint string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", ErrEmptyWebhook
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidWebhook, errors.Unwrap(err))
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: url must include scheme and host", ErrInvalidWebhook)
	}

	return u.String(), u.Scheme + "://" + u.Host, nil
}

// Send implements [Sender]. It builds the Slack message for result and
// POSTs it to the webhook exactly once.
func (n *SlackNotifier) Send(ctx context.Context, result *models.ValidationResult) DeliveryStatus {
	status := DeliveryStatus{ID: n.ids.Generate()}

	l := n.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("delivery_id", status.ID)
	})

	body := BuildSlackRequest(result, n.now())

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(n.webhook)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = n.endpoint
			status.Err = fmt.Errorf("%w: %w", ErrWebhookUnreachable, err)
			l.Warn().Err(err).Str("url", n.endpoint).Msg("failed to connect to Slack webhook")
			return status
		}

		status.Err = fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
		l.Error().Err(err).Str("url", n.endpoint).Msg("error sending Slack notification")
		return status
	}

	status.StatusCode = resp.StatusCode()
	if resp.StatusCode() != http.StatusOK {
		text := strings.TrimSpace(resp.String())
		status.Err = fmt.Errorf("%w: http %d: %s", ErrWebhookRejected, resp.StatusCode(), text)
		l.Warn().
			Str("url", n.endpoint).
			Int("status_code", resp.StatusCode()).
			Str("response", text).
			Msg("request to Slack webhook returned error")
		return status
	}

	status.Delivered = true
	l.Debug().Str("url", n.endpoint).Msg("Slack notification delivered")

	return status
}

// Callback returns a function that sends a notification for each result it
// is given using ctx. It suits code paths that only accept a callback.
func (n *SlackNotifier) Callback(ctx context.Context) func(result *models.ValidationResult) DeliveryStatus {
	return func(result *models.ValidationResult) DeliveryStatus {
		return n.Send(ctx, result)
	}
}
