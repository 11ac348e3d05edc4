package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/oleastore/go-admin-console/apiclient"
	"github.com/oleastore/go-admin-console/users"
	"github.com/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeUpstreamError translates an api client failure into a console
// response. Backend rejections keep their status and detail; anything else
// surfaces as a bad gateway.
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		writeDetail(w, apiErr.StatusCode, apiErr.Detail)
		return
	}
	s.log.Error().Err(err).Msg("store backend unreachable")
	writeDetail(w, http.StatusBadGateway, "Store backend unavailable")
}

func pageNumber(r *http.Request) int {
	pageNum, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || pageNum < 1 {
		return 1
	}
	return pageNum
}

type sessionResponse struct {
	LoggedIn bool        `json:"loggedIn"`
	User     *users.User `json:"user,omitempty"`
}

func (s *Server) sessionSnapshot() sessionResponse {
	current := s.session.Current()
	if !current.LoggedIn {
		return sessionResponse{}
	}
	return sessionResponse{LoggedIn: true, User: current.User}
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteIndex {
			writeDetail(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"app":     s.config.GetAppName(),
			"env":     s.env,
			"session": s.sessionSnapshot(),
		})
	}
}

// LoginPageHandler is the login entry point. An already signed-in admin is
// sent straight back to the index.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.session.Current().AdminAccess() {
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"login": RouteAuthLogin,
		})
	}
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.sessionSnapshot())
	}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginSubmissionHandler signs an operator in. Empty fields are refused
// before the backend is contacted.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			writeDetail(w, http.StatusBadRequest, "Email and password are required")
			return
		}
		if err := users.ValidateEmail(req.Email); err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		login, err := s.api.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}

		s.session.Login(login.User, login.Access, login.Refresh, req.RememberMe)
		writeJSON(w, http.StatusOK, s.sessionSnapshot())
	}
}

// LogoutHandler ends the session. Logging out twice is harmless.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session.Logout()
		w.WriteHeader(http.StatusNoContent)
	}
}
