package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("BrHTysKWKIhwOTyqYvqEUOf3rhTH06Q3k2ZBf3Zbcew=")

func TestSignVerifyRoundtrip(t *testing.T) {
	codec := NewCodec(testSecret)
	now := time.Now()

	raw, err := codec.Sign(NewClaims(42, time.Hour, now))
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	require.WithinDuration(t, now, claims.IssuedAt.Time, time.Second)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerify_WrongSecret(t *testing.T) {
	codec := NewCodec(testSecret)
	other := NewCodec([]byte("a-completely-different-secret"))

	raw, err := codec.Sign(NewClaims(1, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	codec := NewCodec(testSecret)

	raw, err := codec.Sign(NewClaims(1, time.Minute, time.Now().Add(-2*time.Minute)))
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	codec := NewCodec(testSecret)

	raw, err := codec.Sign(NewClaims(1, time.Hour, time.Now()))
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	// Flip a character in the payload segment.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	codec := NewCodec(testSecret)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestUserID_NonNumericSubject(t *testing.T) {
	claims := Claims{}
	claims.Subject = "not-a-number"

	_, err := claims.UserID()
	require.ErrorIs(t, err, ErrInvalidToken)
}
