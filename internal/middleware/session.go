package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dscnitrourkela/project-nutella/config"
	"github.com/dscnitrourkela/project-nutella/internal/auth"
	"github.com/dscnitrourkela/project-nutella/pkg/logger"
)

var log = logger.New("middleware")

// Session loads (or creates) the cookie-keyed session, resolves the request's
// auth scope from the bearer token, and attaches both to the request context.
// Requests presenting an unverifiable token are rejected before execution.
func Session(cfg *config.SessionConfig, store auth.Store, manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(cfg.CookieName, sid, int(cfg.TTL.Seconds()), "/", "", false, true)
		}

		token := bearerToken(c.GetHeader("Authorization"))

		session, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			log.Errorf("failed to load session %s: %v", sid, err)
			if token == "" {
				c.Next()
				return
			}
			// A presented token cannot be resolved without the session
			// record; this is a store failure, not an auth failure.
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   http.StatusText(http.StatusInternalServerError),
				"message": "failed to load session",
			})
			return
		}

		claims, err := manager.GetUserAuthScope(c.Request.Context(), session, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   http.StatusText(http.StatusUnauthorized),
				"message": err.Error(),
			})
			return
		}

		rc := &auth.RequestContext{
			Token:   token,
			Claims:  claims,
			Session: session,
		}
		c.Request = c.Request.WithContext(auth.WithRequestContext(c.Request.Context(), rc))

		c.Next()
	}
}

// bearerToken URI-decodes the authorization header and strips the scheme
// prefix. A header without the prefix is treated as the bare token.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}

	decoded, err := url.PathUnescape(header)
	if err != nil {
		decoded = header
	}

	parts := strings.SplitN(decoded, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(decoded)
}
