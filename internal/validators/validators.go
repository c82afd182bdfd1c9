package validators

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CheckUserID - идентификатор без пробелов и без разделителя данных кнопки
func CheckUserID(userID string, delimiter string) bool {
	if userID == "" || strings.Contains(userID, delimiter) {
		return false
	}
	for _, r := range userID {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// AmountScale - копейки, больше знаков колонка balance не хранит
const AmountScale = 2

// CheckAmount - сумма должна быть положительным десятичным числом не точнее копейки
func CheckAmount(amount string) (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	if !value.IsPositive() {
		return decimal.Zero, false
	}
	if !value.Equal(value.Truncate(AmountScale)) {
		return decimal.Zero, false
	}
	return value, true
}
