package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"payshot/core/config"
	"payshot/core/logger"
)

// AccessOptions defines how allow-list checks should behave.
type AccessOptions struct {
	// Allowed is the parsed allow-list; empty means everyone is permitted.
	Allowed  map[int64]struct{}
	OnReject tele.HandlerFunc
}

// IsAllowed reports whether the user passes the allow-list check.
func (o AccessOptions) IsAllowed(userID int64) bool {
	return config.Allowed(o.Allowed, userID)
}

// AllowlistMiddleware rejects updates from users outside the configured
// allow-list before any downstream handler runs, so no session is ever
// created for them. Updates without a sender pass through untouched.
func AllowlistMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			if opts.IsAllowed(user.ID) {
				return next(c)
			}
			logger.TG.Warn("access denied",
				slog.String("event", "tg.access_denied"),
				slog.Int64("user_id", user.ID),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
