package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.ServeMetrics)
	assert.Equal(t, "mid", cfg.Rates.DefaultRate)
	assert.Equal(t, 60, cfg.Rates.LoadTimeoutSec)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/fxrates?sslmode=disable", cfg.Database.DSN)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("rates.default_rate", "close")
	v.Set("database.host", "localhost")
	v.Set("database.max_open_conns", 0)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "close", cfg.Rates.DefaultRate)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Contains(t, cfg.Database.DSN, "@localhost:5432/")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Host: "db", Port: 5432, User: "postgres", Name: "fxrates"},
			Rates:    RatesConfig{DefaultRate: "mid", LoadTimeoutSec: 30},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: []string{"server.port must be positive"},
		},
		{
			name:    "missing default rate",
			mutate:  func(c *Config) { c.Rates.DefaultRate = "" },
			wantErr: []string{"rates.default_rate is required"},
		},
		{
			name:    "default rate is the alias",
			mutate:  func(c *Config) { c.Rates.DefaultRate = "default" },
			wantErr: []string{"must name a stored rate"},
		},
		{
			name: "multiple problems are joined",
			mutate: func(c *Config) {
				c.Database.Host = ""
				c.Rates.LoadTimeoutSec = -1
			},
			wantErr: []string{"database.host is required", "rates.load_timeout_sec must be positive"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if len(tc.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tc.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
