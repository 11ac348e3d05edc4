// Package devbackend is an in-memory stand-in for the Olea REST backend.
// It exists so the console can be developed and tested without the real
// platform: same endpoints, same JSON shapes, same credential semantics
// (short-lived access token, longer-lived refresh token, admin-gated
// resources).
package devbackend

import (
	"net/http"

	"github.com/oleastore/go-admin-console/internal/config"
	"github.com/rs/zerolog"
)

type Server struct {
	mux    *http.ServeMux
	data   *Dataset
	tokens *TokenIssuer
	log    zerolog.Logger
}

func New(cfg config.TokenConfig, data *Dataset, log zerolog.Logger) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		data:   data,
		tokens: NewTokenIssuer(cfg),
		log:    log,
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	s.mux.HandleFunc("POST /login/", s.LoginHandler())
	s.mux.HandleFunc("POST /token/refresh/", s.RefreshHandler())

	s.mux.HandleFunc("GET /users/", s.RequireAdmin(s.ListUsersHandler()))
	s.mux.HandleFunc("POST /users/", s.RequireAdmin(s.CreateUserHandler()))
	s.mux.HandleFunc("GET /users/{id}/", s.RequireAdmin(s.GetUserHandler()))
	s.mux.HandleFunc("PUT /users/{id}/", s.RequireAdmin(s.UpdateUserHandler()))
	s.mux.HandleFunc("DELETE /users/{id}/", s.RequireAdmin(s.DeleteUserHandler()))

	s.mux.HandleFunc("GET /products/", s.RequireAdmin(s.ListProductsHandler()))
	s.mux.HandleFunc("POST /products/", s.RequireAdmin(s.CreateProductHandler()))
	s.mux.HandleFunc("GET /products/{id}/", s.RequireAdmin(s.GetProductHandler()))
	s.mux.HandleFunc("PUT /products/{id}/", s.RequireAdmin(s.UpdateProductHandler()))
	s.mux.HandleFunc("DELETE /products/{id}/", s.RequireAdmin(s.DeleteProductHandler()))

	s.mux.HandleFunc("GET /orders/", s.RequireAdmin(s.ListOrdersHandler()))
	s.mux.HandleFunc("GET /orders/{id}/", s.RequireAdmin(s.GetOrderHandler()))
	s.mux.HandleFunc("PATCH /orders/{id}/", s.RequireAdmin(s.PatchOrderHandler()))
	s.mux.HandleFunc("DELETE /orders/{id}/", s.RequireAdmin(s.DeleteOrderHandler()))
}
