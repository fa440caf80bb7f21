package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/middleware"
)

const plannerOrigin = "http://localhost:5173"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler(t *testing.T) {
	h := middleware.NewCORSHandler([]string{plannerOrigin})(okHandler)

	cases := []struct {
		name        string
		method      string
		origin      string
		reqMethod   string
		reqHeaders  string
		wantOrigin  string
		wantMethods string
	}{
		{
			name:       "simple GET from the planner UI",
			method:     http.MethodGet,
			origin:     plannerOrigin,
			wantOrigin: plannerOrigin,
		},
		{
			name:       "unknown origin gets no allow header",
			method:     http.MethodGet,
			origin:     "http://evil.example.com",
			wantOrigin: "",
		},
		{
			// Browsers lowercase Access-Control-Request-Headers.
			name:        "preflight for a JSON POST",
			method:      http.MethodOptions,
			origin:      plannerOrigin,
			reqMethod:   http.MethodPost,
			reqHeaders:  "content-type",
			wantOrigin:  plannerOrigin,
			wantMethods: http.MethodPost,
		},
		{
			name:        "preflight for a PATCH carrying X-User-ID",
			method:      http.MethodOptions,
			origin:      plannerOrigin,
			reqMethod:   http.MethodPatch,
			reqHeaders:  "content-type,x-user-id",
			wantOrigin:  plannerOrigin,
			wantMethods: http.MethodPatch,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/users/u1/trips", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.reqMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tc.reqMethod)
				req.Header.Set("Access-Control-Request-Headers", tc.reqHeaders)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Less(t, rec.Code, 300)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantMethods != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), tc.wantMethods)
			}
		})
	}
}

func TestCORSHandler_ExposesRetryAfter(t *testing.T) {
	h := middleware.NewCORSHandler([]string{plannerOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/places/search?q=agra", nil)
	req.Header.Set("Origin", plannerOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
}
