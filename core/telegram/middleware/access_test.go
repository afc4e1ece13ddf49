package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payshot/core/config"
)

func TestAccessOptionsFailOpen(t *testing.T) {
	opts := AccessOptions{}
	assert.True(t, opts.IsAllowed(1))
	assert.True(t, opts.IsAllowed(-42))
}

func TestAccessOptionsMembership(t *testing.T) {
	opts := AccessOptions{Allowed: config.ParseAllowList("100, 200 300")}
	assert.True(t, opts.IsAllowed(100))
	assert.True(t, opts.IsAllowed(300))
	assert.False(t, opts.IsAllowed(400))
}
