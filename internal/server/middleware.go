package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/auth"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

const tokenCookie = "auction_token"

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// TokenParser resolves a bearer token to an identity
type TokenParser interface {
	ParseToken(token string) (auth.Identity, error)
}

// JWTAuthMiddleware requires a valid token in the Authorization header.
// When allowQuery is set the token may also come from the ?token= query
// parameter or the auction_token cookie, for browser websocket handshakes.
func JWTAuthMiddleware(parser TokenParser, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" && allowQuery {
			token = c.Query("token")
			if token == "" {
				token, _ = c.Cookie(tokenCookie)
			}
		}
		if token == "" {
			unauthorized(c, fmt.Errorf("%w: missing token", auctionerrors.ErrUnauthorized))
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			unauthorized(c, err)
			return
		}
		auth.SetIdentity(c, identity)
		c.Next()
	}
}

// RoleAuthMiddleware rejects callers without one of the given roles
func RoleAuthMiddleware(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			unauthorized(c, fmt.Errorf("%w: no identity", auctionerrors.ErrUnauthorized))
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		err := fmt.Errorf("role %s may not access %s", identity.Role, c.FullPath())
		utils.JSONErrorKind(c, http.StatusForbidden, err, "forbidden", "forbidden")
		utils.Warn("RoleAuthMiddleware: access denied", map[string]any{"user_id": identity.UserID, "role": identity.Role, "path": c.Request.URL.Path})
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *gin.Context, err error) {
	utils.JSONErrorKind(c, http.StatusUnauthorized, err, "unauthorized", "unauthorized")
	utils.Warn("JWTAuthMiddleware: rejected request", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
}
