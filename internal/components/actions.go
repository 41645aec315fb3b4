package components

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-data-context/internal/config"
	"github.com/MKhiriev/go-data-context/internal/logger"
	"github.com/MKhiriev/go-data-context/internal/notify"
	"github.com/MKhiriev/go-data-context/models"
)

// Values accepted by the notify_on argument.
const (
	NotifyOnAll     = "all"
	NotifyOnSuccess = "success"
	NotifyOnFailure = "failure"
)

var defaultNotificationConfig = NotificationConfig{NotifyOn: NotifyOnAll}

// NotificationConfig holds the keyword arguments of SlackNotificationAction.
type NotificationConfig struct {
	Webhook        string        `mapstructure:"webhook"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	NotifyOn       string        `mapstructure:"notify_on"`
}

// Validate implements instantiate.Validator.
func (c *NotificationConfig) Validate() error {
	if c.Webhook == "" {
		return errors.New("webhook is required")
	}

	switch c.NotifyOn {
	case NotifyOnAll, NotifyOnSuccess, NotifyOnFailure:
		return nil
	default:
		return fmt.Errorf("notify_on must be one of %q, %q or %q, got %q",
			NotifyOnAll, NotifyOnSuccess, NotifyOnFailure, c.NotifyOn)
	}
}

// NotificationAction sends validation results to a [notify.Sender],
// filtered by the result outcome.
type NotificationAction struct {
	sender   notify.Sender
	notifyOn string
}

// NewNotificationAction wraps sender. notifyOn is one of NotifyOnAll,
// NotifyOnSuccess or NotifyOnFailure; an empty value means NotifyOnAll.
func NewNotificationAction(sender notify.Sender, notifyOn string) *NotificationAction {
	if notifyOn == "" {
		notifyOn = NotifyOnAll
	}
	return &NotificationAction{sender: sender, notifyOn: notifyOn}
}

// NewSlackNotificationAction builds a NotificationAction that posts to the
// Slack webhook in cfg.
func NewSlackNotificationAction(cfg NotificationConfig, log *logger.Logger) (*NotificationAction, error) {
	sender, err := notify.NewSlackNotifier(config.Notifier{
		WebhookURL:     cfg.Webhook,
		RequestTimeout: cfg.RequestTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("error creating slack notifier: %w", err)
	}

	return NewNotificationAction(sender, cfg.NotifyOn), nil
}

// Run sends result unless the notify_on policy excludes it. A nil result is
// always sent. Skips are logged to the logger attached to ctx, if any.
func (a *NotificationAction) Run(ctx context.Context, result *models.ValidationResult) notify.DeliveryStatus {
	if !a.shouldNotify(result) {
		logger.FromContext(ctx).Info().
			Str("notify_on", a.notifyOn).
			Bool("success", result.Success).
			Msg("notification skipped")
		return notify.DeliveryStatus{Skipped: true}
	}
	return a.sender.Send(ctx, result)
}

func (a *NotificationAction) shouldNotify(result *models.ValidationResult) bool {
	if result == nil {
		return true
	}

	switch a.notifyOn {
	case NotifyOnSuccess:
		return result.Success
	case NotifyOnFailure:
		return !result.Success
	default:
		return true
	}
}
