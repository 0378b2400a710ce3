package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Roundtrip(t *testing.T) {
	ts := NewTokenService("secret", 15*time.Minute)
	subject := uuid.NewString()

	token, err := ts.Issue(subject, "a@x.com", 30*time.Minute)
	require.NoError(t, err)

	claims := ts.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, subject, claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	t0 := time.Now().Truncate(time.Second)
	ts := NewTokenService("secret", 15*time.Minute).WithClock(func() time.Time { return t0 })

	token, err := ts.Issue(uuid.NewString(), "a@x.com", 0)
	require.NoError(t, err)

	claims := ts.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, t0.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, t0.Unix(), claims.IssuedAt.Unix())
}

func TestTokenService_Expired(t *testing.T) {
	t0 := time.Now()
	ts := NewTokenService("secret", 15*time.Minute).WithClock(func() time.Time { return t0 })

	token, err := ts.Issue(uuid.NewString(), "a@x.com", time.Minute)
	require.NoError(t, err)

	ts.WithClock(func() time.Time { return t0.Add(2 * time.Minute) })
	assert.Nil(t, ts.Verify(token))
}

func TestTokenService_Tampered(t *testing.T) {
	ts := NewTokenService("secret", 15*time.Minute)

	token, err := ts.Issue(uuid.NewString(), "a@x.com", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "appended garbage", token: token + "x"},
		{name: "truncated", token: token[:len(token)-3]},
		{name: "malformed structure", token: "not.a.token"},
		{name: "empty", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ts.Verify(tt.token))
		})
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	ts := NewTokenService("secret", 15*time.Minute)
	other := NewTokenService("rotated", 15*time.Minute)

	token, err := ts.Issue(uuid.NewString(), "a@x.com", time.Minute)
	require.NoError(t, err)

	assert.Nil(t, other.Verify(token))
}
