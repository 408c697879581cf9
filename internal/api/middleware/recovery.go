// Package middleware provides the HTTP middleware chain for the pocketdo API.
package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/pocketdo/pocketdo/internal/api/response"
	"github.com/pocketdo/pocketdo/internal/domain"
)

// Recovery middleware catches panics and returns a 500 error envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v\n%s", err, debug.Stack())
				response.Error(w, &domain.DomainError{
					Code:    domain.ErrCodeInternal,
					Message: "an internal error occurred",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
