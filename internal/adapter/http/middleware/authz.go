package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// unauthorizedMessage is the only rejection body the gate ever sends.
const unauthorizedMessage = "Unauthorized request"

// Authz gates every request on a single static bearer token.
type Authz struct {
	secret string
}

// NewAuthz returns a gate that accepts only secret. An empty secret accepts nothing.
func NewAuthz(secret string) *Authz {
	return &Authz{secret: secret}
}

// ExtractCredential returns the second space-separated field of an
// Authorization header value. The scheme is not checked.
func ExtractCredential(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// Authorize reports whether header carries the configured secret.
func (a *Authz) Authorize(header string) bool {
	if header == "" || a.secret == "" {
		return false
	}
	cred, ok := ExtractCredential(header)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cred), []byte(a.secret)) == 1
}

// Require rejects the request with 401 unless Authorize passes.
// Missing, malformed and wrong credentials get the same response.
func (a *Authz) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Authorize(c.GetHeader("Authorization")) {
			unauth(c)
			return
		}
		c.Next()
	}
}

func unauth(c *gin.Context) {
	unauthorizedTotal.Inc()
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
}
