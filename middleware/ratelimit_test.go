package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(LoginRateLimit(2, time.Minute))
	router.POST("/login", func(c *gin.Context) {
		c.String(200, "ok")
	})

	doReq := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// 同一 IP 第 3 次返回 429
	assert.Equal(t, 200, doReq("192.168.1.1").Code)
	assert.Equal(t, 200, doReq("192.168.1.1").Code)
	w3 := doReq("192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "too many login attempts")

	// 不同 IP 互不影响
	assert.Equal(t, 200, doReq("192.168.1.2").Code)
	assert.Equal(t, 200, doReq("192.168.1.2").Code)
}

func TestSlidingWindow(t *testing.T) {
	w := newSlidingWindow(2, time.Second)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, w.allow("a", t0))
	assert.True(t, w.allow("a", t0.Add(100*time.Millisecond)))
	assert.False(t, w.allow("a", t0.Add(200*time.Millisecond)))

	// 窗口滑过第一条记录后恢复
	assert.True(t, w.allow("a", t0.Add(1100*time.Millisecond)))

	w.sweep(t0.Add(10 * time.Second))
	assert.Empty(t, w.hits)
}
