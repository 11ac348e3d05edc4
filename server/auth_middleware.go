package server

import (
	"net/http"
)

// RequireAdmin is the console's route guard. Admin routes are served only to
// a logged-in admin; everyone else is bounced back to the index page, the
// same treatment for anonymous visitors and logged-in non-admins.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			current := s.session.Current()
			if !current.AdminAccess() {
				s.log.Debug().
					Bool("logged_in", current.LoggedIn).
					Str("path", r.URL.Path).
					Msg("admin route refused")
				http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
