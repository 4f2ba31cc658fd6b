package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/session"
)

type unlockRequest struct {
	Code    string `json:"code"`
	Session string `json:"session"`
}

// Unlock exchanges a secret code, or the token of a won session, for an
// unlock token. The token is returned and also set as a cookie.
func Unlock(codes *auth.CodeChecker, issuer *auth.Issuer, sessions *session.Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req unlockRequest
		if err := c.ShouldBindJSON(&req); err != nil || (req.Code == "" && req.Session == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code or session required"})
			return
		}

		method, sessionToken, strokes := auth.MethodCode, "", 0
		if req.Session != "" {
			snap, err := sessions.Snapshot(c.Request.Context(), req.Session)
			if err != nil || !snap.Won {
				c.JSON(http.StatusForbidden, gin.H{"error": "hole not won yet"})
				return
			}
			method, sessionToken, strokes = auth.MethodWin, snap.Token, snap.Strokes
		} else if err := codes.Check(req.Code); err != nil {
			log.Printf("[AUTH] wrong unlock code from %s", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong code"})
			return
		}

		token, exp, err := issuer.Issue(method, sessionToken, strokes)
		if err != nil {
			log.Printf("[AUTH] issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.CookieName, token, int(time.Until(exp).Seconds()), "/", "", secure, true)
		c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": exp, "method": method})
	}
}
