package flow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payshot/internal/session"
)

func newTestMachine() (*Machine, session.Store) {
	store := session.NewMemoryStore()
	return NewMachine(store), store
}

func TestHappyPathCollectsAllFields(t *testing.T) {
	m, store := newTestMachine()
	const uid int64 = 100

	s := m.Start(uid)
	assert.Equal(t, session.StepCountry, s.Step)

	country, err := m.ChooseCountry(uid, "colombia")
	require.NoError(t, err)
	assert.Equal(t, "Colombia", country.Name)

	kind, err := m.ChooseKind(uid, "waiting")
	require.NoError(t, err)
	assert.False(t, kind.IsError())

	_, err = m.SetAccount(uid, "  12345  ")
	require.NoError(t, err)

	amount, err := m.SetAmount(uid, "500")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(500)))

	got, ok := store.Get(uid)
	require.True(t, ok)
	assert.Equal(t, session.StepDone, got.Step)
	assert.Equal(t, "12345", got.Account)

	req, err := m.Request(uid)
	require.NoError(t, err)
	assert.Equal(t, "COP", req.Country.Currency)
	assert.Equal(t, "12345", req.Account)

	m.Finish(uid)
	assert.False(t, m.InProgress(uid))
}

func TestStepsNeverSkip(t *testing.T) {
	m, _ := newTestMachine()
	const uid int64 = 2
	m.Start(uid)

	// Amount and account input before their step is reached is rejected.
	_, err := m.SetAccount(uid, "999")
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = m.SetAmount(uid, "10")
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = m.ChooseKind(uid, "waiting")
	assert.ErrorIs(t, err, ErrWrongStep)

	step, ok := m.CurrentStep(uid)
	require.True(t, ok)
	assert.Equal(t, session.StepCountry, step)
}

func TestInputWithoutSession(t *testing.T) {
	m, _ := newTestMachine()

	_, err := m.ChooseCountry(1, "colombia")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.SetAmount(1, "10")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.Request(1)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUnknownSelectionsRejectedWithoutAdvance(t *testing.T) {
	m, _ := newTestMachine()
	const uid int64 = 3
	m.Start(uid)

	_, err := m.ChooseCountry(uid, "atlantis")
	assert.ErrorIs(t, err, ErrUnknownCountry)
	step, _ := m.CurrentStep(uid)
	assert.Equal(t, session.StepCountry, step)

	_, err = m.ChooseCountry(uid, "paraguay")
	require.NoError(t, err)

	_, err = m.ChooseKind(uid, "surprise")
	assert.ErrorIs(t, err, ErrUnknownKind)
	step, _ = m.CurrentStep(uid)
	assert.Equal(t, session.StepKind, step)
}

func TestBadAmountReprompts(t *testing.T) {
	m, _ := newTestMachine()
	const uid int64 = 4
	m.Start(uid)
	_, err := m.ChooseCountry(uid, "ecuador")
	require.NoError(t, err)
	_, err = m.ChooseKind(uid, "error")
	require.NoError(t, err)
	_, err = m.SetAccount(uid, "777")
	require.NoError(t, err)

	_, err = m.SetAmount(uid, "not-a-number")
	assert.ErrorIs(t, err, ErrBadAmount)
	step, _ := m.CurrentStep(uid)
	assert.Equal(t, session.StepAmount, step)

	amount, err := m.SetAmount(uid, "1000,50")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1000.5")))
}

func TestRestartDiscardsPriorSession(t *testing.T) {
	m, store := newTestMachine()
	const uid int64 = 5
	m.Start(uid)
	_, err := m.ChooseCountry(uid, "argentina")
	require.NoError(t, err)
	_, err = m.ChooseKind(uid, "waiting")
	require.NoError(t, err)
	_, err = m.SetAccount(uid, "old-account")
	require.NoError(t, err)

	m.Start(uid)

	s, ok := store.Get(uid)
	require.True(t, ok)
	assert.Equal(t, session.StepCountry, s.Step)
	assert.True(t, s.Country.IsZero())
	assert.Empty(t, s.Account)
}

func TestCancelAtAnyStep(t *testing.T) {
	m, _ := newTestMachine()
	const uid int64 = 6

	assert.False(t, m.Cancel(uid))

	m.Start(uid)
	assert.True(t, m.Cancel(uid))
	assert.False(t, m.InProgress(uid))

	m.Start(uid)
	_, err := m.ChooseCountry(uid, "bolivia")
	require.NoError(t, err)
	assert.True(t, m.Cancel(uid))
	assert.False(t, m.InProgress(uid))
}

func TestRequestRequiresCompletion(t *testing.T) {
	m, _ := newTestMachine()
	const uid int64 = 7
	m.Start(uid)

	_, err := m.Request(uid)
	assert.ErrorIs(t, err, ErrIncomplete)
}
