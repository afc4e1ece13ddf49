// Package flow drives the payout screenshot conversation: an intentionally
// linear sequence country -> kind -> account -> amount, ending in a render
// request. Each step accepts exactly one input shape; everything else is
// rejected without touching the session.
package flow

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payshot/internal/payout"
	"payshot/internal/session"
)

var (
	// ErrNoSession means input arrived for a user with no active session;
	// the flow terminates and the user must restart.
	ErrNoSession = errors.New("flow: no active session")
	// ErrWrongStep means the input shape does not match the current step.
	ErrWrongStep = errors.New("flow: input does not match current step")
	// ErrUnknownCountry means the callback named a country outside the fixed set.
	ErrUnknownCountry = errors.New("flow: unknown country")
	// ErrUnknownKind means the callback named an unsupported screenshot kind.
	ErrUnknownKind = errors.New("flow: unknown screenshot kind")
	// ErrEmptyAccount means the account message was blank after trimming.
	ErrEmptyAccount = errors.New("flow: empty account")
	// ErrBadAmount is recoverable: the user is re-prompted and the step
	// stays at awaiting_amount.
	ErrBadAmount = errors.New("flow: malformed amount")
	// ErrIncomplete means render-request assembly ran before all inputs
	// were collected.
	ErrIncomplete = errors.New("flow: session incomplete")
)

// Machine applies conversation transitions against an injected session
// store. It holds no per-user state of its own.
type Machine struct {
	store session.Store
	now   func() time.Time
}

// NewMachine builds a Machine on top of the given store.
func NewMachine(store session.Store) *Machine {
	return &Machine{store: store, now: time.Now}
}

// Start begins a fresh conversation, unconditionally discarding any prior
// session for the user.
func (m *Machine) Start(userID int64) session.Session {
	s := session.Session{
		UserID:    userID,
		Step:      session.StepCountry,
		StartedAt: m.now(),
	}
	m.store.Put(s)
	return s
}

// ChooseCountry validates the country callback and advances to kind selection.
func (m *Machine) ChooseCountry(userID int64, code string) (payout.Country, error) {
	s, ok := m.store.Get(userID)
	if !ok {
		return payout.Country{}, ErrNoSession
	}
	if s.Step != session.StepCountry {
		return payout.Country{}, ErrWrongStep
	}
	country, ok := payout.CountryByCode(code)
	if !ok {
		return payout.Country{}, ErrUnknownCountry
	}
	s.Country = country
	s.Step = session.StepKind
	m.store.Put(s)
	return country, nil
}

// ChooseKind validates the screenshot kind callback and advances to account entry.
func (m *Machine) ChooseKind(userID int64, key string) (payout.Kind, error) {
	s, ok := m.store.Get(userID)
	if !ok {
		return "", ErrNoSession
	}
	if s.Step != session.StepKind {
		return "", ErrWrongStep
	}
	kind, ok := payout.KindByKey(key)
	if !ok {
		return "", ErrUnknownKind
	}
	s.Kind = kind
	s.Step = session.StepAccount
	m.store.Put(s)
	return kind, nil
}

// SetAccount stores the trimmed account text and advances to amount entry.
// No format validation beyond non-empty.
func (m *Machine) SetAccount(userID int64, text string) (string, error) {
	s, ok := m.store.Get(userID)
	if !ok {
		return "", ErrNoSession
	}
	if s.Step != session.StepAccount {
		return "", ErrWrongStep
	}
	account := strings.TrimSpace(text)
	if account == "" {
		return "", ErrEmptyAccount
	}
	s.Account = account
	s.Step = session.StepAmount
	m.store.Put(s)
	return account, nil
}

// SetAmount parses the amount text and completes input collection. A parse
// failure returns ErrBadAmount and leaves the session untouched so the user
// can try again.
func (m *Machine) SetAmount(userID int64, text string) (decimal.Decimal, error) {
	s, ok := m.store.Get(userID)
	if !ok {
		return decimal.Decimal{}, ErrNoSession
	}
	if s.Step != session.StepAmount {
		return decimal.Decimal{}, ErrWrongStep
	}
	amount, err := payout.ParseAmount(text)
	if err != nil {
		return decimal.Decimal{}, ErrBadAmount
	}
	s.Amount = amount
	s.Step = session.StepDone
	m.store.Put(s)
	return amount, nil
}

// Request assembles the render request from a completed session.
func (m *Machine) Request(userID int64) (payout.RenderRequest, error) {
	s, ok := m.store.Get(userID)
	if !ok {
		return payout.RenderRequest{}, ErrNoSession
	}
	if s.Step != session.StepDone || s.Country.IsZero() || s.Kind == "" || s.Account == "" {
		return payout.RenderRequest{}, ErrIncomplete
	}
	return payout.RenderRequest{
		Country: s.Country,
		Kind:    s.Kind,
		Account: s.Account,
		Amount:  s.Amount,
	}, nil
}

// Finish removes the session once the flow has completed or failed
// terminally.
func (m *Machine) Finish(userID int64) {
	m.store.Delete(userID)
}

// Cancel removes the session, reporting whether one existed.
func (m *Machine) Cancel(userID int64) bool {
	existed := m.store.InProgress(userID)
	m.store.Delete(userID)
	return existed
}

// InProgress reports whether the user has an active conversation.
func (m *Machine) InProgress(userID int64) bool {
	return m.store.InProgress(userID)
}

// CurrentStep returns the user's current step, if a session exists.
func (m *Machine) CurrentStep(userID int64) (session.Step, bool) {
	s, ok := m.store.Get(userID)
	if !ok {
		return "", false
	}
	return s.Step, true
}
