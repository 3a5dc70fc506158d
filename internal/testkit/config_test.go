package testkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("TEST_PG_IMAGE", "")
	t.Setenv("TEST_PG_DSN", "postgres://u:p@localhost:5432/fx")
	t.Setenv("TEST_PG_USER", "reader")
	t.Setenv("TEST_STARTUP_TIMEOUT", "15")
	t.Setenv("KEEP_CONTAINERS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "postgres:18.1-alpine", cfg.PGImage)
	assert.Equal(t, "postgres://u:p@localhost:5432/fx", cfg.PGDSN)
	assert.Equal(t, "reader", cfg.PGUser)
	assert.Equal(t, "fxrates", cfg.PGPassword)
	assert.Equal(t, 15*time.Second, cfg.StartupTimeout)
	assert.True(t, cfg.KeepContainers)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, env := range []string{"TEST_PG_DSN", "TEST_PG_USER", "TEST_PG_PASSWORD", "TEST_STARTUP_TIMEOUT", "KEEP_CONTAINERS"} {
		t.Setenv(env, "")
	}

	cfg := LoadConfig()
	assert.Empty(t, cfg.PGDSN)
	assert.Equal(t, 90*time.Second, cfg.StartupTimeout)
	assert.False(t, cfg.KeepContainers)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"2m", 2 * time.Minute},
		{"45", 45 * time.Second},
		{"soon", time.Second},
		{"", time.Second},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, parseTimeout(tc.in, time.Second))
		})
	}
}

func TestScenarioRates(t *testing.T) {
	obs := ScenarioRates()
	assert.Len(t, obs, 7)

	bid := 0
	for _, o := range obs {
		assert.Equal(t, "USD", o.Quote)
		if o.RateName == "bid" {
			bid++
		}
	}
	assert.Equal(t, 1, bid)
}
