package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/models"
)

// Recover - перехват паники в обработчике, клиенту отдаётся 500 в JSON
func Recover(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// штатное прерывание ответа обрабатывает net/http
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error("Panic recovered",
				"request_id", w.Header().Get(RequestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "internal server error"})
		}()
		h.ServeHTTP(w, r)
	})
}
