// Package session provides the per-user conversation session store.
// Sessions live only for the lifetime of the process; concurrent writes
// for the same user are last-writer-wins.
package session

import (
	"time"

	"github.com/shopspring/decimal"

	"payshot/internal/payout"
)

// Step identifies where a conversation currently is.
type Step string

const (
	// StepCountry waits for a country selection callback.
	StepCountry Step = "awaiting_country"
	// StepKind waits for a screenshot kind selection callback.
	StepKind Step = "awaiting_type"
	// StepAccount waits for an account number text message.
	StepAccount Step = "awaiting_account"
	// StepAmount waits for an amount text message.
	StepAmount Step = "awaiting_amount"
	// StepDone means all inputs are collected and rendering may start.
	StepDone Step = "done"
)

// Session is the in-progress conversation state for one user. Fields are
// populated strictly in step order; a field is only set once the step that
// collects it has completed.
type Session struct {
	UserID    int64
	Step      Step
	Country   payout.Country
	Kind      payout.Kind
	Account   string
	Amount    decimal.Decimal
	StartedAt time.Time
}

// Store owns all session records, keyed by user id. At most one session
// exists per user. Implementations hand out copies, so callers never share
// mutable state across calls.
type Store interface {
	Get(userID int64) (Session, bool)
	Put(s Session)
	Delete(userID int64)
	Reset()
	InProgress(userID int64) bool
}
