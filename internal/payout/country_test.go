package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryByCode(t *testing.T) {
	c, ok := CountryByCode("colombia")
	require.True(t, ok)
	assert.Equal(t, "Colombia", c.Name)
	assert.Equal(t, "COP", c.Currency)
	assert.Equal(t, "America/Bogota", c.Timezone)

	_, ok = CountryByCode("narnia")
	assert.False(t, ok)
}

func TestCountriesAreComplete(t *testing.T) {
	all := Countries()
	require.Len(t, all, 5)
	for _, c := range all {
		assert.NotEmpty(t, c.Code)
		assert.NotEmpty(t, c.Currency)
		assert.NotEmpty(t, c.CurrencySymbol)
		assert.NotNil(t, c.Location())
	}
}

func TestKindByKey(t *testing.T) {
	k, ok := KindByKey("waiting")
	require.True(t, ok)
	assert.False(t, k.IsError())

	k, ok = KindByKey("error")
	require.True(t, ok)
	assert.True(t, k.IsError())

	_, ok = KindByKey("bogus")
	assert.False(t, ok)
}
