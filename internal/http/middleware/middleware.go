package middleware

import (
	"net/http"

	"github.com/davidbz/propwise/internal/config"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares; the first one sees the request first.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// BuildMiddlewareChain is the chain in front of the property API. CORS answers
// preflights before any id is minted; Recover sits inside Trace so a panicking
// handler is still logged with its request id.
func BuildMiddlewareChain(corsConfig *config.CORSConfig) Middleware {
	return Chain(
		CORS(corsConfig),
		Trace(),
		Recover(),
	)
}
