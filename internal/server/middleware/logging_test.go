package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		handler   http.HandlerFunc
		name      string
		method    string
		path      string
		status    int
		wantLevel string
	}{
		{
			name:   "list expenses logged as INFO",
			method: http.MethodGet,
			path:   "/api/v1/expenses",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			status:    http.StatusOK,
			wantLevel: "INFO",
		},
		{
			name:   "created expense logged as INFO",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"7"}`))
			},
			status:    http.StatusCreated,
			wantLevel: "INFO",
		},
		{
			name:   "missing group logged as WARN",
			method: http.MethodGet,
			path:   "/api/v1/groups/999",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			status:    http.StatusNotFound,
			wantLevel: "WARN",
		},
		{
			name:   "version conflict logged as WARN",
			method: http.MethodPut,
			path:   "/api/v1/expenses/7",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
			},
			status:    http.StatusConflict,
			wantLevel: "WARN",
		},
		{
			name:   "storage failure logged as ERROR",
			method: http.MethodPost,
			path:   "/api/v1/groups",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			status:    http.StatusInternalServerError,
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, nil))

			handler := LoggingMiddleware(logger)(tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			req.Header.Set("User-Agent", "splitwiser-cli/1.0")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "HTTP request")
			assert.Contains(t, logOutput, tt.method)
			assert.Contains(t, logOutput, tt.path)
			assert.Contains(t, logOutput, "192.168.1.1:12345")
			assert.Contains(t, logOutput, "splitwiser-cli/1.0")
			assert.Contains(t, logOutput, tt.wantLevel)
		})
	}
}

func TestLoggingMiddleware_CapturesDurationAndSize(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"7","version":2}`)) // 22 bytes
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/7", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "duration_ms")
	assert.Contains(t, logOutput, "bytes_written=22")
	assert.Contains(t, logOutput, "status=200")
}

func TestLoggingMiddleware_OmitsQueryString(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?group_id=5&session=opaque", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "/api/v1/expenses")
	assert.NotContains(t, logOutput, "session=opaque")
}

func TestLoggingWithSkip(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	handler := LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

	t.Run("health check is not logged", func(t *testing.T) {
		logBuf.Reset()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, logBuf.String())
	})

	t.Run("api request is logged", func(t *testing.T) {
		logBuf.Reset()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, logBuf.String(), "HTTP request")
		assert.Contains(t, logBuf.String(), "/api/v1/groups")
	})
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	tests := []struct {
		name        string
		writeHeader bool
		statusCode  int
		want        int
	}{
		{name: "explicit 201", writeHeader: true, statusCode: http.StatusCreated, want: http.StatusCreated},
		{name: "explicit 409", writeHeader: true, statusCode: http.StatusConflict, want: http.StatusConflict},
		{name: "default 200 without WriteHeader", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := &responseWriter{
				ResponseWriter: httptest.NewRecorder(),
				statusCode:     http.StatusOK,
			}

			if tt.writeHeader {
				rw.WriteHeader(tt.statusCode)
			}
			_, _ = rw.Write([]byte("body"))

			assert.Equal(t, tt.want, rw.statusCode)
		})
	}
}

func TestResponseWriter_AccumulatesBytesWritten(t *testing.T) {
	rw := &responseWriter{
		ResponseWriter: httptest.NewRecorder(),
		statusCode:     http.StatusOK,
	}

	n, err := rw.Write([]byte(`{"id":"7",`))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = rw.Write([]byte(`"version":1}`))
	require.NoError(t, err)

	assert.Equal(t, int64(22), rw.written)
}
