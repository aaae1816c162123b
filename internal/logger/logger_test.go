package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGet_NopBeforeInit(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() should never return nil")
	}
}

func TestRequestIDMiddleware_Generates(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	header := w.Header().Get(RequestIDHeader)
	if header == "" {
		t.Fatal("X-Request-ID header should be set")
	}
	if seen != header {
		t.Errorf("context request_id = %q, header = %q", seen, header)
	}
}

func TestRequestIDMiddleware_ReusesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestAccessLogMiddleware_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLogMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusTeapot, "tea") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestAccessLogMiddleware_TagsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := ReplaceForTest(zap.New(core))
	defer restore()

	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLogMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("request entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", fields["request_id"])
	}
	if fields["status"] != int64(http.StatusNoContent) {
		t.Errorf("status = %v, want 204", fields["status"])
	}
}

func TestReplaceForTest_Restores(t *testing.T) {
	before := globalLogger
	replacement := zap.NewExample()
	restore := ReplaceForTest(replacement)
	if Get() != replacement {
		t.Error("ReplaceForTest should swap the global logger")
	}
	restore()
	if globalLogger != before {
		t.Error("restore should put the previous logger back")
	}
}
