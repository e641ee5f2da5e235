// Package metrics 以 Prometheus 記錄各項操作的結果。
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pinbank/internal/bank"
)

// Outcome label values.
const (
	OutcomeOK                = "ok"
	OutcomeInvalidAmount     = "invalid_amount"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeInvalidTarget     = "invalid_target"
	OutcomeAccountNotFound   = "account_not_found"
	OutcomeInvalidPin        = "invalid_pin"
	OutcomeRejected          = "rejected"
	OutcomeError             = "error"
)

type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	accounts   prometheus.Gauge
}

// NewCollector 建立使用私有 registry 的 collector，不污染 prometheus.DefaultRegisterer。
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		operations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "bank_operations_total",
			Help: "Bank operations by kind and outcome",
		}, []string{"operation", "outcome"}),
		accounts: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "bank_accounts",
			Help: "Number of accounts held by the bank",
		}),
	}
}

// RecordOperation 依 err 的種類累加 bank_operations_total。
func (c *Collector) RecordOperation(operation string, err error) {
	c.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

func (c *Collector) SetAccounts(n int) {
	c.accounts.Set(float64(n))
}

// Handler 回傳只暴露本 collector registry 的 /metrics handler。
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Outcome 將錯誤對應為 outcome 標籤值。
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, bank.ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, bank.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, bank.ErrInvalidTarget):
		return OutcomeInvalidTarget
	case errors.Is(err, bank.ErrAccountNotFound):
		return OutcomeAccountNotFound
	case errors.Is(err, bank.ErrInvalidPin):
		return OutcomeInvalidPin
	case errors.Is(err, bank.ErrWeakCredentials):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
