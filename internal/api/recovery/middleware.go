package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/highlightagent/highlight-agent/internal/api/respond"
)

// Middleware intercepts panics from downstream alert handlers, logs the
// request context and stack, and answers with the API's JSON error shape.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("query", r.URL.RawQuery).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("alert API panic recovered")
				respond.WriteInternalError(w, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
