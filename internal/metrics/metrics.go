package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты операций
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultSkipped  = "skipped"
	ResultInvalid  = "invalid"
	ResultDenied   = "denied"
	ResultDegraded = "degraded"
)

var (
	once sync.Once

	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_submissions_total",
			Help: "Payment submissions by result.",
		},
		[]string{"result"},
	)

	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_decisions_total",
			Help: "Administrator decisions by action and result.",
		},
		[]string{"action", "result"},
	)

	telegramRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_requests_total",
			Help: "Outbound Telegram Bot API calls by method and result.",
		},
		[]string{"method", "result"},
	)
)

// MustRegister регистрирует счётчики в реестре по умолчанию (повторный вызов ничего не делает)
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(submissionsTotal, decisionsTotal, telegramRequestsTotal)
	})
}

func IncSubmission(result string) {
	submissionsTotal.WithLabelValues(result).Inc()
}

func IncDecision(action, result string) {
	decisionsTotal.WithLabelValues(action, result).Inc()
}

func IncTelegramRequest(method, result string) {
	telegramRequestsTotal.WithLabelValues(method, result).Inc()
}
