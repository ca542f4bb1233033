// Package token issues and verifies the signed bearer tokens that carry a
// principal's identity. The codec is a pure transform over an injected secret
// and the clock: no global state, no store access.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = time.Hour

// ErrInvalidToken covers every verification failure: bad signature, malformed
// input, or expiry. Callers must not learn which.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload embedded in every token. Both principal
// classes use the same shape; admin and user tokens differ only in Role.
type Claims struct {
	SubjectID string
	Role      string
}

// Codec signs and verifies identity tokens with an HMAC secret. Construct one
// at startup and treat it as immutable.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec for the given secret. An empty secret is a
// configuration error and the constructor rejects it so the process fails
// fast at startup rather than signing unverifiable tokens.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue produces a signed token embedding the subject id, role, and an
// absolute expiry c.ttl from now.
func (c *Codec) Issue(subjectID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its identity claims.
// Any failure — malformed input, wrong signature, expiry — is ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{SubjectID: sub, Role: role}, nil
}
