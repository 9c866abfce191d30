package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		target           string
		status           int
		response         string
		checkLogContains []string
	}{
		{
			name:     "GET 200",
			method:   http.MethodGet,
			target:   "/users?page=2",
			status:   http.StatusOK,
			response: "OK",
			checkLogContains: []string{
				`"method":"GET"`,
				`"uri":"/users?page=2"`,
				`"status":200`,
				`"duration":`,
				`"size":2`,
			},
		},
		{
			name:     "POST 409",
			method:   http.MethodPost,
			target:   "/register",
			status:   http.StatusConflict,
			response: `{"msg":"Email already registered"}`,
			checkLogContains: []string{
				`"method":"POST"`,
				`"status":409`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewLogger("test", logger.WithOutput(&buf))
			h := &Handler{logger: log}

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			})

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req = req.WithContext(log.WithContext(req.Context()))
			rr := httptest.NewRecorder()

			h.withLogging(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.response, rr.Body.String())
			for _, want := range tt.checkLogContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
