// Package token implements the signed session-token codec.
//
// Tokens are JWTs signed with a single shared HS256 secret. The claims carry
// a snapshot of the identity at issuance time: a role change in the store
// does not take effect until the user logs in again, and there is no
// revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Verification failures. Verify always returns an error wrapping exactly one
// of these sentinels.
var (
	// ErrMalformed indicates the token string could not be parsed.
	ErrMalformed = errors.New("token: malformed")
	// ErrBadSignature indicates the signature does not match the shared secret.
	ErrBadSignature = errors.New("token: bad signature")
	// ErrExpired indicates the token's expiry has passed.
	ErrExpired = errors.New("token: expired")
)

// Claims is the payload embedded in a session token.
type Claims struct {
	// Subject is the user id of the authenticated user.
	Subject  int64  `json:"subject"`
	Username string `json:"username"`
	RoleName string `json:"role_name"`
	gojwt.RegisteredClaims
}

// Codec issues and verifies signed session tokens. It is safe for concurrent
// use: the secret and TTL are immutable after construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a token codec from configuration.
func NewCodec(cfg *Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{secret: []byte(cfg.Secret), ttl: cfg.TTL}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the given identity. Expiry is issuance time + TTL.
func (c *Codec) Issue(userID int64, username, roleName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Subject:  userID,
		Username: username,
		RoleName: roleName,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return c.Sign(claims)
}

// Sign signs the claims as-is, without touching the time fields. Issue is the
// normal entry point; Sign exists for callers that need full control over
// iat/exp.
func (c *Codec) Sign(claims *Claims) (string, error) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses the token string and validates its signature and expiry.
// Expiry is checked by the jwt library: a token is valid iff now is strictly
// before exp, so a token verified at exactly its expiry instant is rejected.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// keyFunc pins the signing method before handing out the shared secret.
func (c *Codec) keyFunc(tok *gojwt.Token) (interface{}, error) {
	if tok.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return c.secret, nil
}

// classify maps golang-jwt parse errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
