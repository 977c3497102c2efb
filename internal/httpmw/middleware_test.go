package httpmw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestWithRequestContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := WithRequestContext(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		Logger(r.Context(), nil).Info("inside")
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	})

	t.Run("oversized id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestID+1))
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Len(t, seen, 36)
	})

	t.Run("handler logger carries the id", func(t *testing.T) {
		entries := logs.FilterMessage("inside").All()
		require.Len(t, entries, 3)
		assert.Equal(t, "abc", entries[1].ContextMap()["request_id"])
	})
}

func TestLoggerFallback(t *testing.T) {
	fallback := zap.NewExample()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, fallback, Logger(req.Context(), fallback))
	assert.NotNil(t, Logger(req.Context(), nil))
	assert.Empty(t, RequestID(req.Context()))
}

func TestWithRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), WithRequestContext(zap.New(core)), WithRecover(nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "panic_recovered", entry.Message)
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry.ContextMap()["request_id"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/play/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestWithAccessLog(t *testing.T) {
	serve := func(t *testing.T, h http.HandlerFunc, method, path string) *observer.ObservedLogs {
		t.Helper()
		core, logs := observer.New(zap.DebugLevel)
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "10.0.0.1:5555"
		Chain(h, WithRequestContext(zap.New(core)), WithAccessLog(nil)).ServeHTTP(httptest.NewRecorder(), req)
		require.Equal(t, 1, logs.Len())
		return logs
	}

	t.Run("api request", func(t *testing.T) {
		logs := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("hello"))
		}, http.MethodPost, "/api/games/g/cmd")

		entry := logs.All()[0]
		fields := entry.ContextMap()
		assert.Equal(t, "http_request", entry.Message)
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, int64(http.StatusConflict), fields["status"])
		assert.Equal(t, int64(5), fields["bytes"])
		assert.Equal(t, "10.0.0.1", fields["remote_ip"])
		assert.Equal(t, "POST", fields["method"])
		assert.NotEmpty(t, fields["request_id"])
	})

	t.Run("implicit ok", func(t *testing.T) {
		logs := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{}"))
		}, http.MethodGet, "/api/stats")
		assert.Equal(t, int64(http.StatusOK), logs.All()[0].ContextMap()["status"])
	})

	t.Run("static and health are debug", func(t *testing.T) {
		for _, path := range []string{"/static/js/play.js", "/healthz"} {
			logs := serve(t, func(w http.ResponseWriter, r *http.Request) {}, http.MethodGet, path)
			assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level, path)
		}
	})

	t.Run("server errors", func(t *testing.T) {
		logs := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, http.MethodGet, "/static/x")
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("event stream", func(t *testing.T) {
		logs := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("event: state\ndata: {}\n\n"))
			w.(http.Flusher).Flush()
		}, http.MethodGet, "/api/games/g/events")
		entry := logs.All()[0]
		assert.Equal(t, "event_stream_closed", entry.Message)
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
	})
}
