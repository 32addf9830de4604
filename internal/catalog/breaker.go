package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	"github.com/MrSnakeDoc/starfav/internal/logger"
)

var (
	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "starfav_catalog_breaker_state",
			Help: "Current state of the catalog circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	catalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfav_catalog_requests_total",
			Help: "Catalog page fetches by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)
)

// BreakerConfig holds circuit breaker settings for the catalog.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // requests allowed while half-open
	Interval     time.Duration // closed-state window for clearing counts
	Timeout      time.Duration // how long the breaker stays open
	FailureRatio float64       // failures/requests ratio that trips it
	MinRequests  uint32        // requests needed before the ratio is evaluated
}

// DefaultBreakerConfig returns the breaker settings used in production.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "catalog",
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// stateToFloat maps gobreaker states to gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func newBreaker(cfg BreakerConfig, log logger.Logger) *gobreaker.CircuitBreaker[[]byte] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		// 4xx answers and caller cancellation do not count as failures.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *statusError
			return errors.As(err, &se) && se.code < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("catalog circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	breakerState.WithLabelValues(cfg.Name).Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}
