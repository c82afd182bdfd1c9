package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/denmor86/ya-payrelay/internal/services"
)

// WebhookHandler - единая точка входа: уведомление о платеже или нажатие кнопки администратором
func WebhookHandler(relay services.RelayService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.WebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format", "error", err)
			WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid JSON body"})
			return
		}

		var err error
		if req.IsCallback() {
			err = relay.HandleCallback(r.Context(), req.CallbackQuery)
		} else {
			err = relay.HandleSubmission(r.Context(), req.PaymentRequest)
		}

		switch {
		case err == nil:
			WriteJSON(w, http.StatusOK, models.StatusResponse{Status: models.StatusOK})
		case errors.Is(err, services.ErrMalformedCallback):
			// нажатие уже отброшено, ответ не 2xx заставил бы Telegram повторять доставку
			WriteJSON(w, http.StatusOK, models.StatusResponse{Status: models.StatusOK})
		case errors.Is(err, services.ErrValidation):
			WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrUpstream):
			WriteJSON(w, http.StatusInternalServerError, models.StatusResponse{Status: models.StatusFailed})
		default:
			logger.Error("Failed to process webhook", "error", err)
			WriteJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		}
	})
}

// WriteJSON - ответ в формате JSON с заданным кодом
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}
