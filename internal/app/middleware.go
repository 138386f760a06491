package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const userIdContextKey = contextKey("userId")

func contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(userIdContextKey).(int)
	if !ok {
		panic("missing user id in request context")
	}

	return userId
}

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestLogger injects a logger carrying the request id into the request
// context, so handlers and downstream goroutines log correlatable lines.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("requestId", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ensureGuestUserSession guarantees every visitor has a session, so seat
// selections can be staged before the user authenticates.
func (app *Application) ensureGuestUserSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.sessionManager.Token(r.Context()) == "" && !app.sessionManager.Exists(r.Context(), "guest") {
			app.sessionManager.Put(r.Context(), "guest", true)
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, ok := app.sessionGetUserId(r)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userIdContextKey, userId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, ok := app.sessionGetUserId(r)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		if !app.sessionIsAdmin(r) {
			app.forbiddenResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userIdContextKey, userId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
