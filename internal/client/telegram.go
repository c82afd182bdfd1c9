package client

import (
	"context"

	"github.com/denmor86/ya-payrelay/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Методы Bot API
const (
	MethodSendMessage         = "sendMessage"
	MethodSendDocument        = "sendDocument"
	MethodEditMessageCaption  = "editMessageCaption"
	MethodAnswerCallbackQuery = "answerCallbackQuery"

	ParseModeHTML = "HTML"
)

// Messenger - исходящие вызовы Telegram, которые нужны ретранслятору
type Messenger interface {
	SendText(ctx context.Context, chatID string, text string) error
	SendDocument(ctx context.Context, chatID string, fileReference string, caption string, buttons []models.Button) error
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error
	AnswerCallback(ctx context.Context, callbackID string, text string, showAlert bool) error
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendDocumentRequest struct {
	ChatID      string                         `json:"chat_id"`
	Document    string                         `json:"document"`
	Caption     string                         `json:"caption,omitempty"`
	ParseMode   string                         `json:"parse_mode,omitempty"`
	ReplyMarkup *tgbotapi.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type editMessageCaptionRequest struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id"`
	Caption   string `json:"caption"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type answerCallbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
}

// SendText - текстовое сообщение в чат
func (c *Client) SendText(ctx context.Context, chatID string, text string) error {
	return c.call(ctx, MethodSendMessage, sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: ParseModeHTML,
	})
}

// SendDocument - ранее загруженный файл с подписью и inline-кнопками в один ряд
func (c *Client) SendDocument(ctx context.Context, chatID string, fileReference string, caption string, buttons []models.Button) error {
	req := sendDocumentRequest{
		ChatID:    chatID,
		Document:  fileReference,
		Caption:   caption,
		ParseMode: ParseModeHTML,
	}
	if len(buttons) > 0 {
		markup := InlineKeyboard(buttons)
		req.ReplyMarkup = &markup
	}
	return c.call(ctx, MethodSendDocument, req)
}

// EditCaption - замена подписи у сообщения с файлом
func (c *Client) EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error {
	return c.call(ctx, MethodEditMessageCaption, editMessageCaptionRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Caption:   caption,
		ParseMode: ParseModeHTML,
	})
}

// AnswerCallback - ответ на нажатие кнопки, снимает индикатор загрузки у пользователя
func (c *Client) AnswerCallback(ctx context.Context, callbackID string, text string, showAlert bool) error {
	return c.call(ctx, MethodAnswerCallbackQuery, answerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
}

func InlineKeyboard(buttons []models.Button) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
