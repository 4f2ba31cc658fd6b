package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName carries the unlock token for browsers that cannot set headers.
const CookieName = "golfcard_unlock"

const claimsKey = "unlock_claims"

// RequireUnlock rejects requests without a valid unlock token in the
// Authorization header or the unlock cookie.
func RequireUnlock(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		} else if cookie, err := c.Cookie(CookieName); err == nil {
			token = cookie
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "card is locked"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Claims returns the unlock claims set by RequireUnlock.
func Claims(c *gin.Context) *UnlockClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*UnlockClaims)
	return claims
}
