package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestMaker_IssueAndParse(t *testing.T) {
	m := NewMaker(testSecret, time.Hour)

	raw, err := m.Issue("3f9a6a1b3d544fbe8b3a6b3e8d6b2c88")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	sub, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "3f9a6a1b3d544fbe8b3a6b3e8d6b2c88", sub)
}

func TestMaker_DefaultTTL(t *testing.T) {
	m := NewMaker(testSecret, 0)
	assert.Equal(t, 24*time.Hour, m.TTL())
}

func TestMaker_Parse_Rejects(t *testing.T) {
	m := NewMaker(testSecret, time.Hour)
	valid, err := m.Issue("user-1")
	require.NoError(t, err)

	expired := NewMaker(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, err := expired.Issue("user-1")
	require.NoError(t, err)

	otherKey, err := NewMaker("another_secret_key_0987654321", time.Hour).Issue("user-1")
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "invalid.token.here"},
		{"tampered", valid + "x"},
		{"expired", expiredTok},
		{"wrong secret", otherKey},
		{"missing subject", noSubject},
		{"missing expiry", noExpiry},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := m.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, sub)
		})
	}
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer   abc", "abc", true},
		{"  Bearer abc  ", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"abc.def.ghi", "", false},
	}
	for _, tt := range tests {
		got, ok := FromHeader(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}
