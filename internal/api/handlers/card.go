package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/card"
)

// CardTeaser is what the envelope shows before the card is unlocked.
func CardTeaser(svc *card.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		content := svc.Content()
		c.JSON(http.StatusOK, gin.H{
			"to":       content.HerName,
			"nickname": content.Nickname,
			"from":     content.FromName,
			"motion":   content.Motion,
		})
	}
}

// GetCard returns the unlocked card: letter, reasons and vouchers.
func GetCard(svc *card.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.Page(c.Request.Context())
		if err != nil {
			log.Printf("[CARD] page failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// RedeemVoucher marks a voucher used. Redeeming again returns the first
// redemption.
func RedeemVoucher(svc *card.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.Redeem(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, card.ErrUnknownVoucher) {
			c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
			return
		}
		if err != nil {
			log.Printf("[CARD] redeem failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
