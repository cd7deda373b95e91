package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/urlmin/minify-system/internal/core/domain"
)

// DefaultTokenTTL is how long an issued credential stays valid.
const DefaultTokenTTL = 2 * time.Hour

// Claims is the payload carried by a signed bearer credential.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the compact, expiring credentials presented on
// every request. The secret and TTL are fixed at startup.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. A non-positive ttl falls back to DefaultTokenTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a credential for p, valid for the codec's TTL from now.
func (c *Codec) Issue(p domain.Principal) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: p.Email,
		Role:  string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify validates the signature and expiry of token and returns the
// principal it encodes. Expired and forged tokens are indistinguishable to
// the caller: both come back as domain.ErrAuthentication.
func (c *Codec) Verify(token string) (domain.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, fmt.Errorf("verify credential: %w", domain.ErrAuthentication)
	}

	return domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  domain.ParseRole(claims.Role),
	}, nil
}
