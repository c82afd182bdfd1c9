package handlers

import (
	"net/http"
)

const healthText = "Payment relay is running"

// HealthHandler - проверка живости сервиса
func HealthHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(healthText))
	})
}
