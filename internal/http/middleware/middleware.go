// Package middleware holds HTTP middleware shared by the API routes.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes caps request bodies for plan endpoints.
const MaxBodyBytes = 64 << 10

// RequireJSON rejects bodies that are not declared as application/json and caps
// their size.
func RequireJSON(next http.Handler) http.Handler {
	return chi.Chain(
		chimw.AllowContentType("application/json"),
		chimw.RequestSize(MaxBodyBytes),
	).Handler(next)
}
