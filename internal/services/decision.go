package services

import (
	"fmt"
	"strings"

	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/shopspring/decimal"
)

const (
	decisionDelimiter = "_"
	// ограничение Telegram на размер callback_data
	maxCallbackData = 64
)

// EncodeDecision - данные кнопки в виде <action>_<user_id>_<amount>
func EncodeDecision(action models.Action, userID string, amount string) string {
	return string(action) + decisionDelimiter + userID + decisionDelimiter + amount
}

// DecisionButtons - кнопки подтверждения и отклонения под уведомлением администратору
func DecisionButtons(userID string, amount string) ([]models.Button, error) {
	buttons := []models.Button{
		{Text: "✅ Подтвердить", Data: EncodeDecision(models.ActionConfirm, userID, amount)},
		{Text: "❌ Отклонить", Data: EncodeDecision(models.ActionReject, userID, amount)},
	}
	for _, b := range buttons {
		if len(b.Data) > maxCallbackData {
			return nil, fmt.Errorf("%w: callback data %q exceeds %d bytes", ErrValidation, b.Data, maxCallbackData)
		}
	}
	return buttons, nil
}

// ParseDecision разбирает данные кнопки. Всё после второго разделителя считается суммой
func ParseDecision(data string) (models.Action, string, string, decimal.Decimal, error) {
	parts := strings.SplitN(strings.TrimSpace(data), decisionDelimiter, 3)
	if len(parts) != 3 {
		return "", "", "", decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedCallback, data)
	}

	action := models.Action(parts[0])
	if action != models.ActionConfirm && action != models.ActionReject {
		return "", "", "", decimal.Zero, fmt.Errorf("%w: unknown action %q", ErrMalformedCallback, parts[0])
	}
	userID := parts[1]
	if userID == "" {
		return "", "", "", decimal.Zero, fmt.Errorf("%w: empty user id in %q", ErrMalformedCallback, data)
	}
	rawAmount := parts[2]
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return "", "", "", decimal.Zero, fmt.Errorf("%w: invalid amount %q", ErrMalformedCallback, rawAmount)
	}
	return action, userID, rawAmount, amount, nil
}
