package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the write-access key.
const APIKeyHeader = "X-API-Key"

// WriteAuth gates content-mutating methods behind an API key. Read methods
// always pass. With no keys configured the middleware is a no-op, which is
// the local-development default.
func WriteAuth(keys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			for _, key := range keys {
				if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusUnauthorized, "missing or invalid API key")
		})
	}
}
