package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskbot/internal/domain/port"
)

// TelegramSender отправка сообщений через Telegram Bot API
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

func NewSender(api *tgbotapi.BotAPI) *TelegramSender {
	return &TelegramSender{api: api}
}

func (s *TelegramSender) Send(msg port.Message) error {
	m := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	if msg.Markdown {
		m.ParseMode = tgbotapi.ModeMarkdown
	}
	if msg.Keyboard != nil {
		m.ReplyMarkup = toMarkup(msg.Keyboard)
	}

	_, err := s.api.Send(m)
	return err
}

func toMarkup(kb *port.Keyboard) interface{} {
	if kb.Inline {
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, row := range kb.Rows {
			var buttons []tgbotapi.InlineKeyboardButton
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
			rows = append(rows, buttons)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	var rows [][]tgbotapi.KeyboardButton
	for _, row := range kb.Rows {
		var buttons []tgbotapi.KeyboardButton
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Text))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

// Проверка реализации интерфейса
var _ port.Sender = (*TelegramSender)(nil)
