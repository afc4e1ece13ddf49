package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllowList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{"empty", "", nil},
		{"single", "12345", []int64{12345}},
		{"comma separated", "1,2,3", []int64{1, 2, 3}},
		{"whitespace separated", "1 2\t3", []int64{1, 2, 3}},
		{"mixed delimiters", "1, 2,,  3\n4", []int64{1, 2, 3, 4}},
		{"bad tokens skipped", "1,abc,2,4.5,3", []int64{1, 2, 3}},
		{"only garbage", "abc, def", nil},
		{"negative ids", "-100123, 42", []int64{-100123, 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAllowList(tt.raw)
			assert.Len(t, got, len(tt.want))
			for _, id := range tt.want {
				assert.Contains(t, got, id)
			}
		})
	}
}

func TestAllowedFailOpenWhenEmpty(t *testing.T) {
	empty := ParseAllowList("")
	assert.True(t, Allowed(empty, 1))
	assert.True(t, Allowed(empty, -999))
	assert.True(t, Allowed(nil, 42))
}

func TestAllowedMembership(t *testing.T) {
	ids := ParseAllowList("10, 20 30")
	assert.True(t, Allowed(ids, 10))
	assert.True(t, Allowed(ids, 30))
	assert.False(t, Allowed(ids, 40))
}

func TestNormalizeRequiresToken(t *testing.T) {
	err := Normalize(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"

	require.NoError(t, Normalize(cfg))

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, 60, cfg.Telegram.SendTimeoutSeconds)
	assert.Equal(t, 30, cfg.Render.NavTimeoutSeconds)
	assert.Equal(t, 2000, cfg.Render.SettleMS)
	assert.Equal(t, 1280, cfg.Render.ViewportWidth)
	assert.Equal(t, 800, cfg.Render.ViewportHeight)
	assert.NotEmpty(t, cfg.Render.ScratchDir)
}

func TestNormalizeWebhookModeValidation(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = "webhook"

	require.Error(t, Normalize(cfg))

	cfg.Webhook.URL = "https://bot.example.com/webhook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeWebhook, cfg.Telegram.RunMode)
}
