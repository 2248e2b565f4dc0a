package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, zap.NewNop())
	r := gin.New()
	r.GET("/login", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/login", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/login", "").Code)

	w := do(r, http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, zap.NewNop())
	rl.limiter("10.0.0.1")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.limiter("10.0.0.2")

	rl.Cleanup(time.Minute)
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}
