package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vinestrading/catalog-service/internal/model"
)

const bearerPrefix = "bearer "

type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue returns a signed token for subject valid for the issuer's TTL.
func (t *TokenIssuer) Issue(subject string, role model.Role) (string, error) {
	return t.IssueWithTTL(subject, role, t.ttl)
}

func (t *TokenIssuer) IssueWithTTL(subject string, role model.Role, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and expiry of raw. A leading "Bearer "
// is accepted.
func (t *TokenIssuer) Parse(raw string) (*Claims, error) {
	raw = StripBearer(raw)
	if raw == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// StripBearer removes a case-insensitive "Bearer " prefix.
func StripBearer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(v[len(bearerPrefix):])
	}
	return v
}
