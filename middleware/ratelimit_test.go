package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupRateLimitRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	router := setupRateLimitRouter(NewRateLimiter(3, time.Minute))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimiterBlocksOverBudget(t *testing.T) {
	router := setupRateLimitRouter(NewRateLimiter(2, time.Minute))

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %v", codes)
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	router := setupRateLimitRouter(NewRateLimiter(1, time.Minute))

	first := httptest.NewRequest("GET", "/ping", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first client: expected status 200, got %d", w.Code)
	}

	second := httptest.NewRequest("GET", "/ping", nil)
	second.RemoteAddr = "10.0.0.4:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, second)
	if w.Code != http.StatusOK {
		t.Errorf("second client: expected status 200, got %d", w.Code)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	// 1 token per 100ms, so a drained bucket recovers within a short sleep.
	rl := NewRateLimiter(1, 100*time.Millisecond)
	router := setupRateLimitRouter(rl)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.5:1234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected drained bucket to limit, got %d", w.Code)
	}

	time.Sleep(150 * time.Millisecond)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected refilled bucket to allow, got %d", w.Code)
	}
}
