package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for herald-hub.
var Metrics *HubMetrics

// HubMetrics contains all metric instruments.
type HubMetrics struct {
	LoginsTotal        metric.Int64Counter
	LoginFailuresTotal metric.Int64Counter
	GuardDeniedTotal   metric.Int64Counter
	SessionsRevoked    metric.Int64Counter
	ProxyDuration      metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("herald-hub")

	loginsTotal, err := meter.Int64Counter("herald_hub_logins_total",
		metric.WithDescription("Total number of successful logins"),
	)
	if err != nil {
		return err
	}

	loginFailuresTotal, err := meter.Int64Counter("herald_hub_login_failures_total",
		metric.WithDescription("Total number of rejected login attempts"),
	)
	if err != nil {
		return err
	}

	guardDeniedTotal, err := meter.Int64Counter("herald_hub_guard_denied_total",
		metric.WithDescription("Total number of requests denied by the route guard"),
	)
	if err != nil {
		return err
	}

	sessionsRevoked, err := meter.Int64Counter("herald_hub_sessions_revoked_total",
		metric.WithDescription("Total number of sessions revoked via the internal endpoint"),
	)
	if err != nil {
		return err
	}

	proxyDuration, err := meter.Float64Histogram("herald_hub_proxy_duration_seconds",
		metric.WithDescription("Dashboard proxy request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &HubMetrics{
		LoginsTotal:        loginsTotal,
		LoginFailuresTotal: loginFailuresTotal,
		GuardDeniedTotal:   guardDeniedTotal,
		SessionsRevoked:    sessionsRevoked,
		ProxyDuration:      proxyDuration,
	}

	return nil
}
