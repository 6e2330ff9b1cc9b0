package middleware

import (
	"fmt"
	"net/http"

	"github.com/davidbz/propwise/internal/observability"
)

// Recover turns a handler panic into a 500 response.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					observability.FromContext(r.Context()).Error("handler panicked",
						observability.String("path", r.URL.Path),
						observability.Error(fmt.Errorf("panic: %v", rec)))
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
