package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(h *Handler, traceID string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, captured
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name          string
		traceID       string
		wantEchoed    bool
		wantGenerated bool
	}{
		{name: "trace ID from request header is reused", traceID: "my-custom-trace-id", wantEchoed: true},
		{name: "no trace ID in request, UUID generated", traceID: "", wantGenerated: true},
		{name: "oversized trace ID replaced", traceID: strings.Repeat("x", maxTraceIDLength+1), wantGenerated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, captured := executeWithTraceID(&Handler{logger: logger.Nop()}, tt.traceID)

			require.NotNil(t, captured)
			got := rr.Header().Get(traceIDHeader)
			if tt.wantEchoed {
				assert.Equal(t, tt.traceID, got)
			}
			if tt.wantGenerated {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTraceID_LoggerInContextCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.NewLogger("test", logger.WithOutput(&buf))}

	_, captured := executeWithTraceID(h, "trace-123")
	require.NotNil(t, captured)

	logger.FromRequest(captured).Info().Msg("inside handler")

	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr, _ := executeWithTraceID(h, "")
			mu.Lock()
			seen[rr.Header().Get(traceIDHeader)] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
