package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BruksfildServices01/barbershop-bot/internal/usecase/booking"
)

// render monta a mensagem; as opções viram teclado inline com
// r.Columns botões por linha.
func render(chatID int64, r booking.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if len(r.Choices) == 0 {
		return msg
	}

	cols := r.Columns
	if cols < 1 {
		cols = 1
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for start := 0; start < len(r.Choices); start += cols {
		end := min(start+cols, len(r.Choices))

		var row []tgbotapi.InlineKeyboardButton
		for _, c := range r.Choices[start:end] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Token))
		}
		rows = append(rows, row)
	}

	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return msg
}
