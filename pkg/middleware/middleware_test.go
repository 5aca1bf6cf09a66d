package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/cache"
	stderrors "storefront-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware(zap.NewNop()))
	router.GET("/", func(c *gin.Context) {
		assert.Equal(t, GetRequestID(c), RequestIDFromContext(c.Request.Context()))
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := perform(router, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = perform(router, http.MethodGet, "/", nil)
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestIdempotencyMiddleware_ReplaysSuccessfulWrites(t *testing.T) {
	store := NewCacheRequestIDStore(cache.NewInMemoryCache(zap.NewNop()))
	calls := 0

	router := gin.New()
	router.Use(RequestIDMiddleware(zap.NewNop()))
	router.Use(IdempotencyMiddleware(store, zap.NewNop(), time.Minute))
	router.POST("/carts", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	headers := map[string]string{RequestIDHeader: "req-1"}
	first := perform(router, http.MethodPost, "/carts", headers)
	second := perform(router, http.MethodPost, "/carts", headers)

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))

	// a request without a client id is always processed
	perform(router, http.MethodPost, "/carts", nil)
	perform(router, http.MethodPost, "/carts", nil)
	assert.Equal(t, 3, calls)
}

func TestIdempotencyMiddleware_DoesNotStoreFailures(t *testing.T) {
	store := NewCacheRequestIDStore(cache.NewInMemoryCache(zap.NewNop()))
	calls := 0

	router := gin.New()
	router.Use(IdempotencyMiddleware(store, zap.NewNop(), time.Minute))
	router.DELETE("/carts/1", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusNotFound, gin.H{"error": "ResourceNotFound"})
	})

	headers := map[string]string{RequestIDHeader: "req-2"}
	perform(router, http.MethodDelete, "/carts/1", headers)
	perform(router, http.MethodDelete, "/carts/1", headers)

	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_RejectsIDReusedForAnotherRequest(t *testing.T) {
	store := NewCacheRequestIDStore(cache.NewInMemoryCache(zap.NewNop()))
	idempotent := IdempotencyMiddleware(store, zap.NewNop(), time.Minute)
	deletes := 0

	router := gin.New()
	router.POST("/api/shopping-cart/add-product", idempotent, func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"status_code": 201})
	})
	router.DELETE("/api/customers/:id", idempotent, func(c *gin.Context) {
		deletes++
		c.Status(http.StatusNoContent)
	})
	router.POST("/products", idempotent, func(c *gin.Context) { c.Status(http.StatusCreated) })

	headers := map[string]string{RequestIDHeader: "abc"}
	require.Equal(t, http.StatusCreated, perform(router, http.MethodPost, "/api/shopping-cart/add-product", headers).Code)

	w := perform(router, http.MethodDelete, "/api/customers/5", headers)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, w.Header().Get("Idempotent-Replayed"))
	assert.Contains(t, w.Body.String(), "Conflict")
	assert.Equal(t, 0, deletes)

	// same path with a different query is a different request too
	headers = map[string]string{RequestIDHeader: "def"}
	require.Equal(t, http.StatusCreated, perform(router, http.MethodPost, "/products?batch=1", headers).Code)
	assert.Equal(t, http.StatusConflict, perform(router, http.MethodPost, "/products?batch=2", headers).Code)
}

func TestIdempotencyMiddleware_AfterAuthNeverReplaysToAnonymous(t *testing.T) {
	manager := auth.NewJWTManager("secret", zap.NewNop())
	token, _, err := manager.GenerateToken("admin")
	require.NoError(t, err)

	store := NewCacheRequestIDStore(cache.NewInMemoryCache(zap.NewNop()))
	idempotent := IdempotencyMiddleware(store, zap.NewNop(), time.Minute)
	deletes := 0

	router := gin.New()
	router.DELETE("/api/customers/:id", AuthMiddleware(manager, zap.NewNop()), idempotent, func(c *gin.Context) {
		deletes++
		c.Status(http.StatusNoContent)
	})

	authorized := map[string]string{RequestIDHeader: "abc", "Authorization": "Bearer " + token}
	require.Equal(t, http.StatusNoContent, perform(router, http.MethodDelete, "/api/customers/5", authorized).Code)

	w := perform(router, http.MethodDelete, "/api/customers/5", map[string]string{RequestIDHeader: "abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Idempotent-Replayed"))

	w = perform(router, http.MethodDelete, "/api/customers/5", authorized)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, deletes)
}

func TestIdempotencyMiddleware_DoesNotStoreAttachedErrors(t *testing.T) {
	store := NewCacheRequestIDStore(cache.NewInMemoryCache(zap.NewNop()))
	calls := 0

	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.DELETE("/carts/:id", IdempotencyMiddleware(store, zap.NewNop(), time.Minute), func(c *gin.Context) {
		calls++
		_ = c.Error(stderrors.NewResourceNotFound("Cart not found with ID: 1"))
	})

	headers := map[string]string{RequestIDHeader: "req-3"}
	first := perform(router, http.MethodDelete, "/carts/1", headers)
	second := perform(router, http.MethodDelete, "/carts/1", headers)

	assert.Equal(t, http.StatusNotFound, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Empty(t, second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 2, calls)
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodOptions, "/", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", zap.NewNop())
	token, _, err := manager.GenerateToken("admin")
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(manager, zap.NewNop()))
	router.POST("/products", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("username"))
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := perform(router, http.MethodPost, "/products", headers)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.GET("/standard", func(c *gin.Context) {
		_ = c.Error(stderrors.NewConflict("product in use", "Product ID: 3"))
	})
	router.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := perform(router, http.MethodGet, "/standard", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Conflict","message":"product in use","details":"Product ID: 3"}`, w.Body.String())

	w = perform(router, http.MethodGet, "/plain", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRecoveryHandler(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryHandler(zap.NewNop()))
	router.GET("/", func(c *gin.Context) { panic("unexpected") })

	w := perform(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "InternalError")
}
