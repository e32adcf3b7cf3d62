package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursehub/internal/infrastructure/repository/inmem"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(store *inmem.CounterStore, limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/limited", NewRateLimiter(store).Limit("test", limit, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLimitAllowsUnderLimit(t *testing.T) {
	r := newLimitedRouter(inmem.NewCounterStore(), 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := hit(r)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
}

func TestLimitBlocksOverLimit(t *testing.T) {
	r := newLimitedRouter(inmem.NewCounterStore(), 3, time.Minute)

	for i := 0; i < 3; i++ {
		hit(r)
	}

	rec := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "retryAfter")
}

func TestLimitResetsAfterWindow(t *testing.T) {
	r := newLimitedRouter(inmem.NewCounterStore(), 1, 10*time.Millisecond)

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, http.StatusOK, hit(r).Code)
}

func TestLimitPassesWhenStoreIsDown(t *testing.T) {
	store := inmem.NewCounterStore()
	store.Err = errors.New("dial tcp: connection refused")
	r := newLimitedRouter(store, 1, time.Minute)

	for i := 0; i < 5; i++ {
		rec := hit(r)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
}
