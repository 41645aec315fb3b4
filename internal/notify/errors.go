package notify

import "errors"

var (
	// ErrEmptyWebhook is returned by NewSlackNotifier when no webhook URL is
	// configured.
	ErrEmptyWebhook = errors.New("empty webhook url")
	// ErrInvalidWebhook is returned by NewSlackNotifier when the webhook URL
	// has no scheme or host.
	ErrInvalidWebhook = errors.New("invalid webhook url")
	// ErrWebhookUnreachable is reported in a DeliveryStatus when the
	// connection to the webhook could not be established or timed out.
	ErrWebhookUnreachable = errors.New("webhook unreachable")
	// ErrWebhookRejected is reported in a DeliveryStatus when the webhook
	// answered with a status other than 200.
	ErrWebhookRejected = errors.New("webhook rejected notification")
	// ErrDeliveryFailed is reported in a DeliveryStatus for any other
	// failure while preparing or sending the request.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
