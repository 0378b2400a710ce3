package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.VerifySubject)
	assert.Equal(t, 0, cfg.DescriptionMaxLen)
	assert.False(t, cfg.MailEnabled())
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("AUTH_VERIFY_SUBJECT", "true")
	t.Setenv("TASK_DESCRIPTION_MAX_LEN", "200")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.VerifySubject)
	assert.Equal(t, 200, cfg.DescriptionMaxLen)
}

func TestNewConfig_RejectsBadBcryptCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")

	_, err := NewConfig()
	require.Error(t, err)
}

func TestConfig_MailEnabled(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.MailEnabled())
}
