// Package commands declares the metadata the registry keeps per bot command.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command couples a handler with how the command surfaces in Telegram.
type Command struct {
	Handler tele.HandlerFunc
	// Description appears in the Telegram command menu.
	Description string
	// AdminOnly restricts the command to the configured admin user.
	AdminOnly bool
	// Hidden keeps the command out of the public menu.
	Hidden bool
	// Aliases are alternative spellings accepted in chat.
	Aliases []string
}
