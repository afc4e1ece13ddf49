package middleware

import (
	"log/slog"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"payshot/core/logger"
)

// RecoverMiddleware catches handler panics so a single bad update cannot
// take the bot down. The update is dropped after logging.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				var userID int64
				if c.Sender() != nil {
					userID = c.Sender().ID
				}
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Int64("user_id", userID),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
