package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongCode = errors.New("auth: wrong code")

// NormalizeCode trims, upper-cases and strips whitespace so "k + d" and
// "K+D" are the same code.
func NormalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, code)
}

// HashCode returns the bcrypt hash of a normalised code.
func HashCode(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(NormalizeCode(code)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(h), nil
}

// CodeChecker accepts any code whose normalised form matches one of its
// bcrypt hashes.
type CodeChecker struct {
	hashes [][]byte
}

// NewCodeChecker hashes plain codes at the given cost and adds precomputed
// hashes as-is.
func NewCodeChecker(plain, hashes []string, cost int) (*CodeChecker, error) {
	c := &CodeChecker{}
	for _, code := range plain {
		h, err := bcrypt.GenerateFromPassword([]byte(NormalizeCode(code)), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash code: %w", err)
		}
		c.hashes = append(c.hashes, h)
	}
	for _, h := range hashes {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("invalid code hash: %w", err)
		}
		c.hashes = append(c.hashes, []byte(h))
	}
	return c, nil
}

func (c *CodeChecker) Check(code string) error {
	n := NormalizeCode(code)
	if n == "" {
		return ErrWrongCode
	}
	for _, h := range c.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(n)) == nil {
			return nil
		}
	}
	return ErrWrongCode
}
