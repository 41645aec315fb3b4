// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify formats validation results as Slack block messages and
// delivers them to an incoming-webhook URL.
//
// Delivery is best-effort: [Sender.Send] performs a single POST, never
// retries and never returns an error to the caller. The outcome is reported
// through a [DeliveryStatus] that callers are free to ignore, so that a
// failed notification cannot abort the validation workflow that triggered
// it.
package notify

import (
	"context"

	"github.com/MKhiriev/go-data-context/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sender_mock.go -package=mock

// Sender delivers a notification about a validation result.
type Sender interface {
	// Send formats result and delivers it once. result may be nil, in which
	// case a "no validation occurred" message is sent. Failures are logged
	// and reported in the returned status; Send never panics.
	Send(ctx context.Context, result *models.ValidationResult) DeliveryStatus
}
