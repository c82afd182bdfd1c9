package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/denmor86/ya-payrelay/internal/client"
	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/metrics"
	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/denmor86/ya-payrelay/internal/storage"
	"github.com/denmor86/ya-payrelay/internal/validators"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . RelayService

var (
	ErrValidation        = errors.New("validation error")
	ErrUpstream          = errors.New("upstream failure")
	ErrMalformedCallback = errors.New("malformed callback")
)

type RelayService interface {
	HandleSubmission(ctx context.Context, req models.PaymentRequest) error
	HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error
}

// Relay - пересылает заявки администратору и применяет его решения.
// Balances может быть nil: тогда подтверждение работает без накопления баланса
type Relay struct {
	Messenger client.Messenger
	Balances  storage.BalanceStorage
	Formatter *Formatter
	AdminID   string
}

// Создание сервиса
func NewRelay(messenger client.Messenger, balances storage.BalanceStorage, formatter *Formatter, adminID string) *Relay {
	return &Relay{
		Messenger: messenger,
		Balances:  balances,
		Formatter: formatter,
		AdminID:   adminID,
	}
}

// HandleSubmission - проверка заявки и отправка чека администратору с кнопками решения
func (r *Relay) HandleSubmission(ctx context.Context, req models.PaymentRequest) error {
	// отключение вызывающей стороны не прерывает отправку, каждый вызов ограничен таймаутом клиента
	ctx = context.WithoutCancel(ctx)
	submission := req.Submission()

	if err := validateSubmission(submission); err != nil {
		logger.Warn("Invalid payment submission", "user_id", submission.UserID, "error", err)
		metrics.IncSubmission(metrics.ResultInvalid)
		return err
	}
	buttons, err := DecisionButtons(submission.UserID, submission.Amount)
	if err != nil {
		logger.Warn("Invalid payment submission", "user_id", submission.UserID, "error", err)
		metrics.IncSubmission(metrics.ResultInvalid)
		return err
	}

	caption := r.Formatter.AdminCaption(submission)
	logger.Info("Sending payment to admin", "user_id", submission.UserID, "amount", submission.Amount)

	if err := r.Messenger.SendDocument(ctx, r.AdminID, submission.FileReference, caption, buttons); err != nil {
		logger.Error("Failed to notify admin", "user_id", submission.UserID, "error", err)
		metrics.IncSubmission(metrics.ResultFailed)
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	metrics.IncSubmission(metrics.ResultOK)
	return nil
}

// HandleCallback - решение администратора по нажатой кнопке.
// Ответ на callback всегда отправляется последним
func (r *Relay) HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil {
		return fmt.Errorf("%w: empty callback query", ErrMalformedCallback)
	}
	// после зачисления правка подписи и ответ на callback должны уйти даже при обрыве соединения
	ctx = context.WithoutCancel(ctx)
	callback, err := r.parseCallback(query)

	// проверка прав раньше разбора данных: чужие нажатия только получают предупреждение
	if r.AdminID == "" || callback.ActorID != r.AdminID {
		logger.Warn("Callback from non-admin rejected", "actor_id", callback.ActorID, "data", query.Data)
		metrics.IncDecision(actionLabel(callback.Action), metrics.ResultDenied)
		r.answer(ctx, callback.CallbackID, AnswerAdminOnly, true)
		return nil
	}

	if err != nil {
		logger.Warn("Malformed callback dropped", "data", query.Data, "error", err)
		metrics.IncDecision(actionLabel(callback.Action), metrics.ResultInvalid)
		r.answer(ctx, callback.CallbackID, "", false)
		return err
	}

	switch callback.Action {
	case models.ActionConfirm:
		r.confirm(ctx, callback)
	case models.ActionReject:
		r.reject(ctx, callback)
	}
	return nil
}

func (r *Relay) confirm(ctx context.Context, callback models.DecisionCallback) {
	balance, degraded := r.applyBalance(ctx, callback)

	if err := r.Messenger.EditCaption(ctx, callback.ChatID, callback.MessageID, r.Formatter.ConfirmedCaption(callback.Caption, balance)); err != nil {
		logger.Error("Failed to edit admin message", "message_id", callback.MessageID, "error", err)
	}

	// платёж уже зачтён, ошибка уведомления пользователя только логируется
	if err := r.Messenger.SendText(ctx, callback.TargetUserID, r.Formatter.UserConfirmation(callback.RawAmount, balance)); err != nil {
		logger.Warn("Failed to notify user", "user_id", callback.TargetUserID, "error", err)
	}

	r.answer(ctx, callback.CallbackID, AnswerConfirmed, false)

	result := metrics.ResultOK
	if degraded {
		result = metrics.ResultDegraded
	}
	metrics.IncDecision(string(models.ActionConfirm), result)
	logger.Info("Payment confirmed", "user_id", callback.TargetUserID, "amount", callback.RawAmount, "balance", balance.String())
}

func (r *Relay) reject(ctx context.Context, callback models.DecisionCallback) {
	if err := r.Messenger.EditCaption(ctx, callback.ChatID, callback.MessageID, r.Formatter.RejectedCaption(callback.Caption)); err != nil {
		logger.Error("Failed to edit admin message", "message_id", callback.MessageID, "error", err)
	}
	r.answer(ctx, callback.CallbackID, AnswerRejected, false)

	metrics.IncDecision(string(models.ActionReject), metrics.ResultOK)
	logger.Info("Payment rejected", "user_id", callback.TargetUserID, "amount", callback.RawAmount)
}

// applyBalance - без хранилища (или при его ошибке) новым балансом считается сама сумма
func (r *Relay) applyBalance(ctx context.Context, callback models.DecisionCallback) (decimal.Decimal, bool) {
	if r.Balances == nil {
		logger.Info("Balance storage not configured, balance equals amount", "user_id", callback.TargetUserID)
		return callback.Amount, true
	}
	balance, err := r.Balances.ApplyDelta(ctx, callback.TargetUserID, "", callback.Amount)
	if err != nil {
		logger.Error("Failed to update balance, balance equals amount", "user_id", callback.TargetUserID, "error", err)
		return callback.Amount, true
	}
	return balance, false
}

func (r *Relay) answer(ctx context.Context, callbackID string, text string, showAlert bool) {
	if err := r.Messenger.AnswerCallback(ctx, callbackID, text, showAlert); err != nil {
		logger.Warn("Failed to answer callback", "callback_id", callbackID, "error", err)
	}
}

// parseCallback заполняет CallbackID и ActorID даже при ошибке разбора
func (r *Relay) parseCallback(query *tgbotapi.CallbackQuery) (models.DecisionCallback, error) {
	callback := models.DecisionCallback{CallbackID: query.ID}
	if query.From != nil {
		callback.ActorID = strconv.FormatInt(query.From.ID, 10)
	}

	action, userID, rawAmount, amount, err := ParseDecision(query.Data)
	if err != nil {
		return callback, err
	}
	callback.Action = action
	callback.TargetUserID = userID
	callback.RawAmount = rawAmount
	callback.Amount = amount

	if query.Message == nil || query.Message.Chat == nil {
		return callback, fmt.Errorf("%w: callback without message", ErrMalformedCallback)
	}
	callback.ChatID = query.Message.Chat.ID
	callback.MessageID = query.Message.MessageID
	callback.Caption = query.Message.Caption
	return callback, nil
}

func actionLabel(action models.Action) string {
	if action == "" {
		return "unknown"
	}
	return string(action)
}

func validateSubmission(s models.PaymentSubmission) error {
	var missing []string
	if s.UserID == "" {
		missing = append(missing, "user_id")
	}
	if s.Amount == "" {
		missing = append(missing, "amount")
	}
	if s.FileReference == "" {
		missing = append(missing, "file_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if !validators.CheckUserID(s.UserID, decisionDelimiter) {
		return fmt.Errorf("%w: invalid user_id %q", ErrValidation, s.UserID)
	}
	if _, ok := validators.CheckAmount(s.Amount); !ok {
		return fmt.Errorf("%w: amount must be a positive number with at most 2 decimal places, got %q", ErrValidation, s.Amount)
	}
	return nil
}
