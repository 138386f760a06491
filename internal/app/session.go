package app

import "net/http"

// Session keys shared with the auth collaborator service. Auth writes the
// user's identity into the session on login; this service only reads it.
const (
	SessionKeyUserId  = "userId"
	SessionKeyIsAdmin = "isAdmin"
)

func (app *Application) sessionGetUserId(r *http.Request) (int, bool) {
	if !app.sessionManager.Exists(r.Context(), SessionKeyUserId) {
		return 0, false
	}

	return app.sessionManager.GetInt(r.Context(), SessionKeyUserId), true
}

func (app *Application) sessionIsAdmin(r *http.Request) bool {
	return app.sessionManager.GetBool(r.Context(), SessionKeyIsAdmin)
}
