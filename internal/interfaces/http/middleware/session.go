package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords/internal/domain/user"
	"medrecords/internal/shared/authctx"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

// ContextKeyUserID is the gin key the request logger reads.
const ContextKeyUserID = "user_id"

type sessionResolver interface {
	Execute(ctx context.Context, token string) (*user.User, error)
}

type SessionMiddleware struct {
	resolver sessionResolver
	logger   logger.Interface
}

func NewSessionMiddleware(resolver sessionResolver, logger logger.Interface) *SessionMiddleware {
	return &SessionMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// Resolve runs once per request. A valid session cookie puts the user id
// into the request context; anything else leaves the request anonymous.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetSessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		u, err := m.resolver.Execute(c.Request.Context(), token)
		if err != nil {
			if !errors.IsSessionInvalidError(err) {
				m.logger.Errorw("failed to resolve session", "error", err, "path", c.Request.URL.Path)
			}
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(authctx.WithUserID(c.Request.Context(), u.ID()))
		c.Set(ContextKeyUserID, u.ID())
		c.Next()
	}
}

// RequireAuth rejects requests that Resolve left anonymous.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authctx.UserID(c.Request.Context()); !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}
