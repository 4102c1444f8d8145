package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"organizerpro/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotentRouter(rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/payrolls/generate",
		func(c *gin.Context) { c.Set("tenant_id", "t1"); c.Next() },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	r := newIdempotentRouter(rdb)

	cacheKey := "idemp:/api/v1/payrolls/generate:t1:key-1"
	mock.ExpectGet(cacheKey).SetVal(`{"cached":true}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls/generate", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cached":true}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	r := newIdempotentRouter(rdb)

	cacheKey := "idemp:/api/v1/payrolls/generate:t1:key-2"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls/generate", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "key-2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestPasses(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	r := newIdempotentRouter(rdb)

	cacheKey := "idemp:/api/v1/payrolls/generate:t1:key-3"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls/generate", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "key-3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeyIsPassThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	r := newIdempotentRouter(rdb)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls/generate", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
