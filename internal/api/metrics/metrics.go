// Package metrics defines all custom Prometheus metrics for the account
// service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry via promauto at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "invalid" (field validation failed), or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "rejected", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// VerificationsTotal counts email confirmation attempts.
// Label:
//   - result: "verified", "already_verified", "expired", "invalid", or "error"
var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total number of email confirmation attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset attempts.
// Label:
//   - result: "ok", "invalid", or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset attempts, by result.",
	},
	[]string{"result"},
)

// EmailsSentTotal counts delivery attempts made by the mail dispatcher.
// Label:
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of transactional emails attempted, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of messages waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each mail dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
