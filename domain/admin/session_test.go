package admin

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionCodec_IssueAndValidate(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)
	now := time.Now()

	token, expires := codec.Issue(now)

	assert.True(t, codec.Validate(token, now))
	assert.WithinDuration(t, now.Add(time.Hour), expires, time.Second)
}

func TestSessionCodec_ExpiredTokenFails(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)
	now := time.Now()

	token, _ := codec.Issue(now)

	assert.False(t, codec.Validate(token, now.Add(2*time.Hour)))
}

func TestSessionCodec_TamperedExpiryFails(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)
	now := time.Now()

	token, _ := codec.Issue(now)
	signature, payload, found := strings.Cut(token, ":")
	require.True(t, found)

	// Push the expiry a year out without re-signing.
	expiry, err := strconv.ParseInt(payload, 10, 64)
	require.NoError(t, err)
	forged := signature + ":" + strconv.FormatInt(expiry+365*24*time.Hour.Milliseconds(), 10)

	assert.False(t, codec.Validate(forged, now))
}

func TestSessionCodec_WrongSecretFails(t *testing.T) {
	issuer := NewSessionCodec("secret-a", time.Hour)
	validator := NewSessionCodec("secret-b", time.Hour)
	now := time.Now()

	token, _ := issuer.Issue(now)

	assert.False(t, validator.Validate(token, now))
}

func TestSessionCodec_GarbageTokensFail(t *testing.T) {
	codec := NewSessionCodec("test-secret", time.Hour)
	now := time.Now()

	for _, token := range []string{"", "nocolon", "deadbeef:", ":123", "deadbeef:notanumber"} {
		assert.False(t, codec.Validate(token, now), "token %q", token)
	}
}

func TestSessionCodec_EmptySecretNeverValidates(t *testing.T) {
	codec := NewSessionCodec("", time.Hour)
	now := time.Now()

	token, _ := codec.Issue(now)

	assert.False(t, codec.Validate(token, now))
}

func TestCredentialsMatch(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	credentials := Credentials{Email: "admin@x.com", PasswordHash: string(hash)}

	t.Run("correct credentials", func(t *testing.T) {
		assert.True(t, credentialsMatch(credentials, "admin@x.com", "hunter2"))
	})

	t.Run("email comparison is case insensitive", func(t *testing.T) {
		assert.True(t, credentialsMatch(credentials, " ADMIN@X.COM ", "hunter2"))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, credentialsMatch(credentials, "admin@x.com", "hunter3"))
	})

	t.Run("wrong email", func(t *testing.T) {
		assert.False(t, credentialsMatch(credentials, "other@x.com", "hunter2"))
	})

	t.Run("unconfigured credentials never match", func(t *testing.T) {
		assert.False(t, credentialsMatch(Credentials{}, "", ""))
	})
}
