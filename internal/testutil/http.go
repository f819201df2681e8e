// internal/testutil/http.go
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithPrincipal attaches an authenticated principal to the request,
// bypassing the identity-header middleware.
func WithPrincipal(r *http.Request, userID primitive.ObjectID, role string) *http.Request {
	p := authn.Principal{ID: userID, Role: role}
	return r.WithContext(authn.WithPrincipal(r.Context(), p))
}

// NewAuthenticatedRequest creates an HTTP request carrying a principal.
func NewAuthenticatedRequest(method, target string, body io.Reader, userID primitive.ObjectID, role string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return WithPrincipal(req, userID, role)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}
