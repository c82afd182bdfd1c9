package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultUsername - имя пользователя, если интейк-система его не передала
const DefaultUsername = "unknown"

// FlexString - строковое поле, которое внешние системы присылают то строкой, то числом
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*s = FlexString(num.String())
	return nil
}

func (s FlexString) String() string {
	return strings.TrimSpace(string(s))
}

// PaymentRequest - уведомление о пополнении баланса, приходит извне
type PaymentRequest struct {
	UserID   FlexString `json:"user_id"`
	Username FlexString `json:"username"`
	Amount   FlexString `json:"amount"`
	FileURL  FlexString `json:"file_url"`
}

// WebhookRequest - произвольное тело входящего запроса: либо уведомление о платеже,
// либо обновление Telegram с нажатием inline-кнопки
type WebhookRequest struct {
	PaymentRequest
	CallbackQuery *tgbotapi.CallbackQuery `json:"callback_query"`
}

// IsCallback - тело содержит нажатие кнопки администратором
func (r WebhookRequest) IsCallback() bool {
	return r.CallbackQuery != nil
}

// PaymentSubmission - проверенное уведомление о платеже
type PaymentSubmission struct {
	UserID        string
	Username      string
	Amount        string
	FileReference string
}

// Submission приводит запрос к модели уведомления, подставляя имя по умолчанию
func (r PaymentRequest) Submission() PaymentSubmission {
	username := strings.TrimPrefix(r.Username.String(), "@")
	if username == "" {
		username = DefaultUsername
	}
	return PaymentSubmission{
		UserID:        r.UserID.String(),
		Username:      username,
		Amount:        r.Amount.String(),
		FileReference: r.FileURL.String(),
	}
}

// StatusResponse - ответ вызывающей стороне
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse - ответ вызывающей стороне при ошибке
type ErrorResponse struct {
	Error string `json:"error"`
}

// Статусы ответа
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)
