package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalKey = "principal"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling. Handlers attach errors
// with c.Error and the middleware renders the matching status body.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID, _ := c.Get("request_id")

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.HTTPCode >= http.StatusInternalServerError {
				logger.Error("Request error",
					"request_id", requestID,
					"error", err.Error(),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
			}
			if !c.Writer.Written() {
				c.JSON(appErr.HTTPCode, gin.H{
					"success": false,
					"message": appErr.Message,
					"error":   appErr,
				})
			}
			return
		}

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":    false,
				"message":    "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware resolves the caller identity from a bearer access token.
// The token may arrive in the Authorization header or, for clients that
// cannot set headers, in the token query parameter.
func AuthMiddleware(tm *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			c.Abort()
			return
		}

		principal, err := tm.VerifyAccess(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// bearerToken reports whether a credential was presented at all. A header in
// a non-bearer scheme counts as presented, so verification rejects it as
// invalid instead of reporting it missing.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1]), true
		}
		return "", true
	}
	token := c.Query("token")
	return token, token != ""
}

// RequireRoles aborts with 403 unless the authenticated principal holds one
// of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
		c.Abort()
	}
}

// PrincipalFrom returns the authenticated principal stored by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (helpers.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return helpers.Principal{}, false
	}
	principal, ok := v.(helpers.Principal)
	return principal, ok
}
