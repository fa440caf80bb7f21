package middleware_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/middleware"
)

var largeJSON = `{"data":"` + strings.Repeat("checkpoint ", 500) + `"}`

var largeHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, largeJSON)
})

func TestCompressionHandler_GzipsWhenAccepted(t *testing.T) {
	h := middleware.NewCompressionHandler()(largeHandler)

	req := httptest.NewRequest(http.MethodGet, "/users/u1/trips", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, largeJSON, string(body))
}

func TestCompressionHandler_PlainWithoutAcceptEncoding(t *testing.T) {
	h := middleware.NewCompressionHandler()(largeHandler)

	req := httptest.NewRequest(http.MethodGet, "/users/u1/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, largeJSON, rec.Body.String())
}
