package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action - решение администратора по платежу
type Action string

// Решения администратора
const (
	ActionConfirm Action = "confirm"
	ActionReject  Action = "reject"
)

// DecisionCallback - нажатие администратором кнопки под уведомлением о платеже
type DecisionCallback struct {
	CallbackID   string
	ActorID      string
	Action       Action
	TargetUserID string
	Amount       decimal.Decimal
	// Сумма в том виде, в котором её прислала интейк-система
	RawAmount string
	ChatID    int64
	MessageID int
	Caption   string
}

// Button - inline-кнопка под сообщением
type Button struct {
	Text string
	Data string
}

// BalanceRecord - строка хранилища балансов
type BalanceRecord struct {
	UserID     string
	Username   string
	Balance    decimal.Decimal
	LastUpdate time.Time
}
