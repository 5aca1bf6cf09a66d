package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"storefront-service/internal/cache"
	stderrors "storefront-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the context key for request ID
	RequestIDContextKey = "request_id"
)

type requestIDKey struct{}

var ErrRequestIDNotFound = errors.New("request ID not found")

// StoredResponse is a replayable copy of a completed write request
type StoredResponse struct {
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// RequestIDStore stores processed request IDs for idempotency
type RequestIDStore interface {
	Store(ctx context.Context, requestID string, response StoredResponse, ttl time.Duration) error
	Get(ctx context.Context, requestID string) (*StoredResponse, error)
}

// CacheRequestIDStore keeps responses in the shared cache, so replays work
// across instances when the cache is Redis
type CacheRequestIDStore struct {
	cache cache.Cache
}

func NewCacheRequestIDStore(c cache.Cache) *CacheRequestIDStore {
	return &CacheRequestIDStore{cache: c}
}

func (s *CacheRequestIDStore) Store(ctx context.Context, requestID string, response StoredResponse, ttl time.Duration) error {
	return cache.SetJSON(ctx, s.cache, cache.IdempotencyKey(requestID), response, ttl)
}

func (s *CacheRequestIDStore) Get(ctx context.Context, requestID string) (*StoredResponse, error) {
	var response StoredResponse
	if err := cache.GetJSON(ctx, s.cache, cache.IdempotencyKey(requestID), &response); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrRequestIDNotFound
		}
		return nil, err
	}
	return &response, nil
}

// RequestIDMiddleware extracts or generates X-Request-ID header
func RequestIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			logger.Debug("Generated new request ID",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}

		c.Set(RequestIDContextKey, requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}

// RequestIDFromContext retrieves the request ID stored by RequestIDMiddleware
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestFingerprint ties a request id to the request it was first used
// with: method, path with query, and credentials
func requestFingerprint(r *http.Request) string {
	sum := sha256.New()
	sum.Write([]byte(r.Method))
	sum.Write([]byte{0})
	sum.Write([]byte(r.URL.RequestURI()))
	sum.Write([]byte{0})
	sum.Write([]byte(r.Header.Get("Authorization")))
	return hex.EncodeToString(sum.Sum(nil))
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// IdempotencyMiddleware replays the stored response of a write request whose
// client-supplied X-Request-ID was already processed, and stores the response
// of successful new ones. Reusing an id for a different request is a
// conflict. Register it after any auth middleware.
func IdempotencyMiddleware(store RequestIDStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Generated ids are never reused, so only client-supplied ones count
		requestID := c.GetHeader(RequestIDHeader)
		if !isWrite(c.Request.Method) || requestID == "" {
			c.Next()
			return
		}

		fingerprint := requestFingerprint(c.Request)
		stored, err := store.Get(c.Request.Context(), requestID)
		switch {
		case err == nil && stored.Fingerprint != fingerprint:
			logger.Warn("Request ID reused for a different request",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.AbortWithStatusJSON(http.StatusConflict, stderrors.NewConflict(
				"request ID already used for a different request",
				"Header: "+RequestIDHeader,
			))
			return
		case err == nil:
			logger.Info("Duplicate request detected, returning stored response",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Header("Idempotent-Replayed", "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		case !errors.Is(err, ErrRequestIDNotFound):
			// fail open
			logger.Warn("Error checking request ID",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// errors attached without a body are rendered later by ErrorHandler
		status := writer.Status()
		if len(c.Errors) > 0 || status < 200 || status >= 300 {
			return
		}

		response := StoredResponse{
			Fingerprint: fingerprint,
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body,
		}
		if err := store.Store(c.Request.Context(), requestID, response, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			return
		}
		logger.Debug("Stored response for idempotency",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		)
	}
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
