package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("auth: invalid unlock token")

// How an unlock token was earned.
const (
	MethodWin  = "win"
	MethodCode = "code"
)

// UnlockClaims is the body of an unlock token.
type UnlockClaims struct {
	Method  string `json:"method"`
	Session string `json:"session,omitempty"`
	Strokes int    `json:"strokes,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 unlock tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for a won session or an accepted code.
func (i *Issuer) Issue(method, session string, strokes int) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := UnlockClaims{
		Method:  method,
		Session: session,
		Strokes: strokes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "card",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

func (i *Issuer) Parse(token string) (*UnlockClaims, error) {
	claims := &UnlockClaims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject != "card" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
