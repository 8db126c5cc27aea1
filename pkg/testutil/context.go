package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// WithURLParam adds a chi route parameter to the request context.
// This simulates what the router does when a handler is called directly
// instead of through a mounted chi.Router.
func WithURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
