package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pkgerrors "user-management-api/pkg/errors"
	"user-management-api/pkg/logger"
	"user-management-api/pkg/security"
)

// ClaimsKey is the gin context key holding the decoded bearer token claims
const ClaimsKey = "claims"

// BearerAuth returns a Gin middleware that requires a decodable JWT in the Authorization header.
// Only the token format is checked. Signature and expiry are not.
func BearerAuth(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := security.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			reject(c, log, "Unauthorized. Token is missing.", err)
			return
		}

		claims, err := security.DecodeToken(raw)
		if err != nil {
			reject(c, log, "Unauthorized. Invalid token format.", err)
			return
		}

		c.Set(ClaimsKey, claims)
		if sub := security.Subject(claims); sub != "" {
			ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, sub)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

func reject(c *gin.Context, log *zap.Logger, message string, err error) {
	level := zap.WarnLevel
	if errors.Is(err, security.ErrMissingToken) {
		level = zap.InfoLevel
	}
	logger.WithContext(c.Request.Context(), log).Log(level, "request rejected",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	unauthorized := pkgerrors.NewUnauthorizedError(message)
	c.AbortWithStatusJSON(unauthorized.HTTPStatus(), gin.H{"error": unauthorized.Error()})
}
