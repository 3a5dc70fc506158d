// Package testkit provides Postgres-backed infrastructure for integration tests.
package testkit

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds environment-driven settings for the integration test database.
type Config struct {
	PGImage        string
	PGDSN          string // If set, skip the Postgres container.
	PGUser         string
	PGPassword     string
	StartupTimeout time.Duration
	KeepContainers bool // If true, do not terminate the container on shutdown.
}

// LoadConfig reads test infrastructure settings from the environment.
func LoadConfig() Config {
	v := viper.New()
	v.SetDefault("pg_image", "postgres:18.1-alpine")
	v.SetDefault("pg_user", "fxrates")
	v.SetDefault("pg_password", "fxrates")
	v.SetDefault("startup_timeout", "90s")
	v.SetDefault("keep_containers", false)

	for key, env := range map[string]string{
		"pg_image":        "TEST_PG_IMAGE",
		"pg_dsn":          "TEST_PG_DSN",
		"pg_user":         "TEST_PG_USER",
		"pg_password":     "TEST_PG_PASSWORD",
		"startup_timeout": "TEST_STARTUP_TIMEOUT",
		"keep_containers": "KEEP_CONTAINERS",
	} {
		_ = v.BindEnv(key, env)
	}

	return Config{
		PGImage:        v.GetString("pg_image"),
		PGDSN:          v.GetString("pg_dsn"),
		PGUser:         v.GetString("pg_user"),
		PGPassword:     v.GetString("pg_password"),
		StartupTimeout: parseTimeout(v.GetString("startup_timeout"), 90*time.Second),
		KeepContainers: v.GetBool("keep_containers"),
	}
}

// parseTimeout accepts a Go duration ("2m") or plain seconds ("15").
func parseTimeout(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	fmt.Fprintf(os.Stderr, "testkit: invalid startup timeout %q, using %v\n", s, def)
	return def
}
