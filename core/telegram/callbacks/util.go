// Package callbacks decodes inline button payloads. Buttons built by this
// bot carry raw data keys such as "country_colombia"; buttons built through
// telebot's markup helpers arrive encoded as \f<unique>|<payload>. Both
// shapes resolve to a registry key here.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits callback data into a key and an optional payload.
// Raw keys without a separator come back unchanged with an empty payload.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimPrefix(cb.Data, "\\f")
	parts := strings.SplitN(raw, "|", 2)
	key := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}

// Key resolves the registry key for a pressed button, preferring the
// decoded Unique when telebot filled it in.
func Key(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	k, _ := ParseCallbackData(cb)
	return k
}
