package ghost

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpipe/internal/apperr"
)

func TestParseAdminKey(t *testing.T) {
	key, err := ParseAdminKey("abc:68656c6c6f")
	require.NoError(t, err)

	assert.Equal(t, "abc", key.ID)
	assert.Equal(t, []byte("hello"), key.Secret)
}

func TestParseAdminKey_Malformed(t *testing.T) {
	for _, raw := range []string{"", "nocolon", ":68656c6c6f", "abc:", "abc:zz", "a:b:c"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseAdminKey(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrConfig)
			assert.ErrorIs(t, err, ErrMalformedAdminKey)
		})
	}
}

func parseToken(t *testing.T, signed string, secret []byte) *jwt.Token {
	t.Helper()

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	return token
}

func TestTokenSource_Mint(t *testing.T) {
	key, err := ParseAdminKey("abc:68656c6c6f")
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	src := &TokenSource{key: key, now: func() time.Time { return now }}

	first, err := src.Mint()
	require.NoError(t, err)

	now = now.Add(time.Second)

	second, err := src.Mint()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	var issued []float64

	for _, signed := range []string{first, second} {
		token := parseToken(t, signed, []byte("hello"))

		assert.Equal(t, "abc", token.Header["kid"])
		assert.Equal(t, "HS256", token.Header["alg"])
		assert.Equal(t, "JWT", token.Header["typ"])

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)

		iat, ok := claims["iat"].(float64)
		require.True(t, ok)
		exp, ok := claims["exp"].(float64)
		require.True(t, ok)

		assert.Equal(t, float64(300), exp-iat)
		assert.Equal(t, TokenAudience, claims["aud"])

		issued = append(issued, iat)
	}

	assert.Equal(t, float64(1_700_000_000), issued[0])
	assert.Equal(t, issued[0]+1, issued[1])
}

func TestTokenSource_WrongSecretFails(t *testing.T) {
	key, err := ParseAdminKey("abc:68656c6c6f")
	require.NoError(t, err)

	signed, err := NewTokenSource(key).Mint()
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("other"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}
