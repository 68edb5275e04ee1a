package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactMasksSecretKeys(t *testing.T) {
	out := redact([]interface{}{"user_id", "u-1", "password", "hunter2", "Authorization", "Bearer x", "dangling"})

	assert.Equal(t, []interface{}{
		"user_id", "u-1",
		"password", "[REDACTED]",
		"Authorization", "[REDACTED]",
		"dangling",
	}, out)
}

func TestNewDevelopmentAndProduction(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		assert.NoError(t, err)
		assert.NotNil(t, l.SugaredLogger)
	}
}
