package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/expensaver/expensaver-api/internal/account"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := IssueAccessToken("42", account.User, Contact{Name: "Alice", Email: "a@x.com"}, accessSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, account.User, claims.Role)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Empty(t, claims.Phone)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokensIssuedTogetherDiffer(t *testing.T) {
	first, err := IssueAccessToken("1", account.User, Contact{}, accessSecret, time.Hour)
	require.NoError(t, err)
	second, err := IssueAccessToken("1", account.User, Contact{}, accessSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	r1, err := IssueRefreshToken("1", refreshSecret, time.Hour)
	require.NoError(t, err)
	r2, err := IssueRefreshToken("1", refreshSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2)
}

func TestParseAccessTokenErrors(t *testing.T) {
	valid, err := IssueAccessToken("1", account.User, Contact{}, accessSecret, time.Hour)
	require.NoError(t, err)
	expired, err := IssueAccessToken("1", account.User, Contact{}, accessSecret, -time.Minute)
	require.NoError(t, err)
	refresh, err := IssueRefreshToken("1", refreshSecret, time.Hour)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: jwt.ErrTokenMalformed},
		{name: "wrong secret", token: valid, want: jwt.ErrTokenSignatureInvalid},
		{name: "expired", token: expired, want: jwt.ErrTokenExpired},
		{name: "refresh token as access", token: refresh, want: jwt.ErrTokenSignatureInvalid},
		{name: "alg none", token: none, want: jwt.ErrTokenSignatureInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := accessSecret
			if tt.name == "wrong secret" {
				secret = "other"
			}
			_, err := ParseAccessToken(tt.token, secret)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseRefreshToken(t *testing.T) {
	token, err := IssueRefreshToken("7", refreshSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(token, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)

	_, err = ParseRefreshToken(token, accessSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestHashToken(t *testing.T) {
	a := HashToken("abc")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("abc"))
	assert.NotEqual(t, a, HashToken("abd"))
	assert.Equal(t, strings.ToLower(a), a)
}
