package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer mints and verifies the portal's own session tokens. The token
// carries nothing but the session ID; the profile record stays
// server-side in the Store.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer constructs an Issuer from config.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{secret: []byte(cfg.Secret), ttl: cfg.TTL}
}

// TTL returns the configured session lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the given session ID.
func (i *Issuer) Issue(sessionID string) (string, error) {
	now := jwt.TimeFunc()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify validates a token and returns the session ID it names.
func (i *Issuer) Verify(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrNoToken
	}
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(jwt.TimeFunc().Unix(), true) {
		return "", ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}
