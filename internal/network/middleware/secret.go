package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/denmor86/ya-payrelay/internal/logger"
)

// SecretTokenHeader - заголовок, которым Telegram подписывает вебхуки (secret_token в setWebhook)
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// SecretToken - проверка общего секрета. Пустой секрет отключает проверку
func SecretToken(secret string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		if secret == "" {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(SecretTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("Webhook secret mismatch", "uri", r.RequestURI, "remote", r.RemoteAddr)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
