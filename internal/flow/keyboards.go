package flow

import (
	tele "gopkg.in/telebot.v4"

	"payshot/core/telegram/keyboard"
	"payshot/internal/payout"
)

const (
	countryCallbackPrefix = "country_"
	kindCallbackPrefix    = "type_"
)

// countryKeyboard lists every supported country, one per row. Callback data
// is the raw "country_<code>" key so registry lookup matches it directly.
func countryKeyboard() *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(payout.Countries()))
	for _, c := range payout.Countries() {
		rows = append(rows, []keyboard.InlineBtn{{
			Text: c.Flag + " " + c.Name,
			Data: countryCallbackPrefix + c.Code,
		}})
	}
	return keyboard.RawInlineButtons(rows...)
}

// kindKeyboard offers the two screenshot variants.
func kindKeyboard() *tele.ReplyMarkup {
	return keyboard.RawInlineButtons(
		[]keyboard.InlineBtn{{Text: kindWaitingLabel, Data: kindCallbackPrefix + string(payout.KindWaiting)}},
		[]keyboard.InlineBtn{{Text: kindErrorLabel, Data: kindCallbackPrefix + string(payout.KindError)}},
	)
}
