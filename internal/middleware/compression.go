package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// NewCompressionHandler returns a middleware that gzips responses for
// clients that accept it. Small bodies are left uncompressed by gzhttp's
// default minimum size.
func NewCompressionHandler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	}
}
