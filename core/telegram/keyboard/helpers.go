// Package keyboard builds inline keyboards for the conversation prompts.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes one inline button: a label and the raw callback data
// it sends back, e.g. "country_colombia".
type InlineBtn struct {
	Text string
	Data string
}

// RawInlineButtons builds an inline keyboard from rows of buttons whose
// callback data is sent as-is, without telebot's \f<unique>| encoding.
// Registry callback keys match the full data string.
func RawInlineButtons(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = tele.InlineButton{Text: btn.Text, Data: btn.Data}
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}
