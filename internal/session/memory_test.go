package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payshot/internal/payout"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(1)
	assert.False(t, ok)
	assert.False(t, store.InProgress(1))

	store.Put(Session{UserID: 1, Step: StepCountry})
	assert.True(t, store.InProgress(1))

	s, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, StepCountry, s.Step)

	store.Delete(1)
	assert.False(t, store.InProgress(1))
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	store := NewMemoryStore()
	store.Put(Session{UserID: 7, Step: StepKind, Account: "original"})

	s, ok := store.Get(7)
	require.True(t, ok)
	s.Account = "mutated locally"

	again, ok := store.Get(7)
	require.True(t, ok)
	assert.Equal(t, "original", again.Account)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	store := NewMemoryStore()
	country, _ := payout.CountryByCode("bolivia")
	store.Put(Session{UserID: 2, Step: StepAmount, Country: country, Account: "555"})
	store.Put(Session{UserID: 2, Step: StepCountry})

	s, ok := store.Get(2)
	require.True(t, ok)
	assert.Equal(t, StepCountry, s.Step)
	assert.True(t, s.Country.IsZero())
	assert.Empty(t, s.Account)
}

func TestMemoryStoreReset(t *testing.T) {
	store := NewMemoryStore()
	store.Put(Session{UserID: 1, Step: StepCountry})
	store.Put(Session{UserID: 2, Step: StepAccount})

	store.Reset()

	assert.False(t, store.InProgress(1))
	assert.False(t, store.InProgress(2))
}
