package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey       = "userID"
	requestIDHeader = "X-Request-Id"
)

// requestID reuses the caller's X-Request-Id or makes a new one.
func requestID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(requestIDHeader)); id != "" && len(id) <= 64 {
		return id
	}
	id, err := common.MakeRandHexString(8)
	if err != nil {
		return "unknown"
	}
	return id
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := requestID(c)
		c.Header(requestIDHeader, reqID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		if h.metrics != nil {
			h.metrics.ObserveHTTP(c.Request.Method, route, status, elapsed)
		}

		args := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		}
		if err := c.Errors.Last(); err != nil {
			args = append(args, "error", err.Err)
		}

		switch {
		case status >= 500:
			h.logger.Error(c.Request.Context(), "request", args...)
		case status >= 400:
			h.logger.Warn(c.Request.Context(), "request", args...)
		default:
			h.logger.Info(c.Request.Context(), "request", args...)
		}
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", common.ErrInvalidToken
	}
	if len(header) <= len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", shared.ErrorInvalidAuthheaderFormat
	}
	return strings.TrimSpace(header[len(common.BearerPrefix):]), nil
}

func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		userID, err := h.users.UserIDFromToken(token)
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) (string, error) {
	id := c.GetString(userIDKey)
	if id == "" {
		return "", shared.ErrorNoUserID
	}
	return id, nil
}
