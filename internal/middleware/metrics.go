package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationFanoutFailures counts notification writes that failed during
	// post/follow/message fan-out. Fan-out failures never fail the triggering
	// request, so this counter is the only signal that they happened.
	NotificationFanoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notification_fanout_failures_total",
		Help: "Total number of failed notification fan-out writes by kind",
	}, []string{"kind"})

	// NotificationsCreated counts notifications successfully fanned out by kind.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notifications_created_total",
		Help: "Total number of notifications created by kind",
	}, []string{"kind"})

	// MessagesSent counts direct messages accepted by the chat service.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_messages_sent_total",
		Help: "Total number of direct messages sent",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
