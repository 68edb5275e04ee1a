package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_SECRET", "SALT_ROUND", "STORE_DRIVER", "DB_PATH", "SQLITE_PATH", "TOKEN_TTL_HOURS", "RATE_LIMIT_MAX", "AUTH_RATE_LIMIT_MAX"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, defaultJWTSecret, cfg.JWTKey)
	assert.Equal(t, 10, cfg.SaltRound)
	assert.Equal(t, 0, cfg.TokenTTLHours)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "db.json", cfg.DBPath)
	assert.Equal(t, "elearn.db", cfg.SQLitePath)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 10, cfg.AuthLimitMax)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SALT_ROUND", "12")
	t.Setenv("BACKUP_KEEP", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 12, cfg.SaltRound)
	assert.Equal(t, 7, cfg.BackupKeep)
}
