// file: internal/server/middleware/verify.go
// version: 1.0.0
// guid: 2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a

package middleware

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixcrate/mixcrate/internal/discord"
)

// VerifyInteraction rejects requests whose ed25519 signature does not check
// out against the application's public key. The body is re-wrapped so later
// handlers can still bind it.
func VerifyInteraction(publicKeyHex string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader("X-Signature-Ed25519")
		timestamp := c.GetHeader("X-Signature-Timestamp")
		if !discord.VerifySignature(publicKeyHex, signature, timestamp, body) {
			log.Printf("[WARN] rejected interaction with bad signature from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}

		c.Next()
	}
}
