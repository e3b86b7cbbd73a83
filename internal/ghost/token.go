package ghost

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogpipe/internal/apperr"
)

// Admin token constants.
const (
	TokenAudience = "/admin/"
	TokenTTL      = 5 * time.Minute
)

// ErrMalformedAdminKey is returned for keys not shaped like "<id>:<hex secret>".
var ErrMalformedAdminKey = errors.New("admin api key must look like <id>:<hex secret>")

// AdminKey is a parsed Ghost Admin API key.
type AdminKey struct {
	ID     string
	Secret []byte
}

// ParseAdminKey splits key on the first colon and hex-decodes the secret half.
func ParseAdminKey(key string) (*AdminKey, error) {
	id, secret, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok || id == "" || secret == "" {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfig, ErrMalformedAdminKey)
	}

	raw, err := hex.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", apperr.ErrConfig, ErrMalformedAdminKey, err)
	}

	return &AdminKey{ID: id, Secret: raw}, nil
}

// TokenSource mints short-lived admin tokens. Tokens are never cached;
// every request gets a new one.
type TokenSource struct {
	key *AdminKey
	now func() time.Time
}

// NewTokenSource creates a token source for key using the wall clock.
func NewTokenSource(key *AdminKey) *TokenSource {
	return &TokenSource{key: key, now: time.Now}
}

// Mint returns a signed HS256 token valid for TokenTTL.
func (s *TokenSource) Mint() (string, error) {
	iat := s.now().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": iat,
		"exp": iat + int64(TokenTTL/time.Second),
		"aud": TokenAudience,
	})
	token.Header["kid"] = s.key.ID

	signed, err := token.SignedString(s.key.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	return signed, nil
}
