package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// TimeLayout - формат времени в подписях, не зависит от локали
	TimeLayout          = "2006-01-02 15:04:05"
	DefaultCurrencySign = "₽"

	// ограничение Telegram на длину подписи к файлу
	captionLimit = 1024
)

// Тексты ответов на нажатие кнопок
const (
	AnswerAdminOnly = "⛔ Только администратор может подтверждать платежи"
	AnswerConfirmed = "✅ Платёж подтверждён"
	AnswerRejected  = "❌ Платёж отклонён"
)

// Formatter - подписи и тексты уведомлений (HTML parse mode)
type Formatter struct {
	CurrencySign string
	Now          func() time.Time
}

func NewFormatter(currencySign string) *Formatter {
	if currencySign == "" {
		currencySign = DefaultCurrencySign
	}
	return &Formatter{CurrencySign: currencySign, Now: time.Now}
}

// UserReference - кликабельная ссылка на пользователя, если известен username, иначе id
func (f *Formatter) UserReference(userID string, username string) string {
	if username != "" && username != models.DefaultUsername {
		return fmt.Sprintf(`<a href="tg://user?id=%s">@%s</a>`, html.EscapeString(userID), html.EscapeString(username))
	}
	return fmt.Sprintf("ID <code>%s</code>", html.EscapeString(userID))
}

// Money - сумма с символом валюты
func (f *Formatter) Money(amount string) string {
	return html.EscapeString(amount) + " " + f.CurrencySign
}

func (f *Formatter) timestamp() string {
	return f.Now().UTC().Format(TimeLayout)
}

// AdminCaption - подпись к чеку для администратора
func (f *Formatter) AdminCaption(submission models.PaymentSubmission) string {
	var b strings.Builder
	b.WriteString("💰 <b>Новая заявка на пополнение баланса</b>\n\n")
	b.WriteString("👤 Пользователь: " + f.UserReference(submission.UserID, submission.Username) + "\n")
	b.WriteString("🆔 ID: <code>" + html.EscapeString(submission.UserID) + "</code>\n")
	b.WriteString("💵 Сумма: " + f.Money(submission.Amount) + "\n")
	b.WriteString("🕒 Время: " + f.timestamp())
	return b.String()
}

// ConfirmedCaption - подпись после подтверждения
func (f *Formatter) ConfirmedCaption(original string, balance decimal.Decimal) string {
	return f.withStatus(original, fmt.Sprintf("✅ <b>Подтверждено</b> %s\nБаланс: %s", f.timestamp(), f.Money(balance.String())))
}

// RejectedCaption - подпись после отклонения
func (f *Formatter) RejectedCaption(original string) string {
	return f.withStatus(original, "❌ <b>Отклонено</b> "+f.timestamp())
}

// UserConfirmation - сообщение пользователю о зачислении
func (f *Formatter) UserConfirmation(amount string, balance decimal.Decimal) string {
	return fmt.Sprintf("✅ Ваш платёж на %s подтверждён.\nТекущий баланс: %s", f.Money(amount), f.Money(balance.String()))
}

// Подпись приходит из Telegram без разметки, поэтому экранируется
func (f *Formatter) withStatus(original string, status string) string {
	original = strings.TrimSpace(original)
	if original == "" {
		return status
	}
	if room := captionLimit - len([]rune(status)) - 3; len([]rune(original)) > room && room > 0 {
		original = string([]rune(original)[:room-1]) + "…"
	}
	return html.EscapeString(original) + "\n\n" + status
}
