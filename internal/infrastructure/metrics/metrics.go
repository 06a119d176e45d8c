package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GPT-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Auth attempts
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "auth_attempts_total",
			Help:      "Total authentication attempts",
		},
		[]string{"kind", "status"},
	)

	// Document store operations
	DocumentOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "document_ops_total",
			Help:      "Total document store write operations",
		},
		[]string{"collection", "operation"},
	)

	DocumentOpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "document_op_errors_total",
			Help:      "Total document store failures by classified type",
		},
		[]string{"collection", "error_type"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "messages_total",
			Help:      "Total chat messages appended",
		},
		[]string{"role"},
	)

	// Invitations
	InvitationsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Subsystem: "gpt_api",
			Name:      "invitations_expired_total",
			Help:      "Total invitations flipped to expired by the sweep job",
		},
	)
)

// RecordRequest records an HTTP request observation.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordAuthAttempt records a login/register attempt outcome.
func RecordAuthAttempt(kind, status string) {
	AuthAttemptsTotal.WithLabelValues(kind, status).Inc()
}

// RecordDocumentOp records a successful document store write.
func RecordDocumentOp(collection, operation string) {
	DocumentOpsTotal.WithLabelValues(collection, operation).Inc()
}

// RecordDocumentOpError records a classified document store failure.
func RecordDocumentOpError(collection, errorType string) {
	DocumentOpErrorsTotal.WithLabelValues(collection, errorType).Inc()
}

// RecordMessage records an appended chat message by role.
func RecordMessage(role string) {
	MessagesTotal.WithLabelValues(role).Inc()
}
