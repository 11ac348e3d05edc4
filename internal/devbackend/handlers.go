package devbackend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/oleastore/go-admin-console/orders"
	"github.com/oleastore/go-admin-console/products"
	"github.com/oleastore/go-admin-console/users"
)

type pageEnvelope struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("devbackend: encoding response")
	}
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// RequireAdmin validates the Bearer access credential and the admin role
// before letting a resource handler run.
func (s *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			s.writeDetail(w, http.StatusUnauthorized, "Invalid Authorization header.")
			return
		}

		claims, err := s.tokens.VerifyAccessToken(parts[1])
		if err != nil {
			s.writeDetail(w, http.StatusUnauthorized, "Given token not valid for any token type")
			return
		}
		if claims.Role != users.RoleAdmin {
			s.writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}

		next(w, r)
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
			s.writeDetail(w, http.StatusBadRequest, "Email and password required")
			return
		}

		user, ok := s.data.UserByEmail(body.Email)
		if !ok || !users.CheckPasswordHash(body.Password, user.PasswordHash) {
			s.writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !user.Active {
			s.writeDetail(w, http.StatusUnauthorized, "Account is inactive. Please contact support.")
			return
		}

		access, err := s.tokens.CreateAccessToken(user)
		if err != nil {
			s.log.Error().Err(err).Msg("devbackend: creating access token")
			s.writeDetail(w, http.StatusInternalServerError, "Token creation failed")
			return
		}
		refresh, err := s.tokens.CreateRefreshToken(user)
		if err != nil {
			s.log.Error().Err(err).Msg("devbackend: creating refresh token")
			s.writeDetail(w, http.StatusInternalServerError, "Token creation failed")
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"access":  access,
			"refresh": refresh,
			"user": map[string]string{
				"id":       user.ID,
				"email":    user.Email,
				"username": user.Username,
				"role":     string(user.Role),
			},
		})
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Refresh string `json:"refresh"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Refresh == "" {
			s.writeDetail(w, http.StatusBadRequest, "Refresh token required")
			return
		}

		claims, err := s.tokens.VerifyRefreshToken(body.Refresh)
		if err != nil {
			s.writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}
		user, ok := s.data.UserByID(claims.UserID)
		if !ok || !user.Active {
			s.writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}

		access, err := s.tokens.CreateAccessToken(user)
		if err != nil {
			s.log.Error().Err(err).Msg("devbackend: creating access token")
			s.writeDetail(w, http.StatusInternalServerError, "Token creation failed")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"access": access})
	}
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, count := page(s.data.ListUsers(), pageNumber(r))
		s.writeJSON(w, http.StatusOK, pageEnvelope{Count: count, Results: results})
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.data.UserByID(r.PathValue("id"))
		if !ok {
			s.writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		s.writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user users.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			s.writeDetail(w, http.StatusBadRequest, "Valid user payload required")
			return
		}
		if user.Role == "" {
			user.Role = users.RoleUser
		}
		if err := user.Validate(); err != nil {
			s.writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, s.data.UpsertUser(user))
	}
}

func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := s.data.UserByID(id); !ok {
			s.writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		var user users.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			s.writeDetail(w, http.StatusBadRequest, "Valid user payload required")
			return
		}
		if err := user.Validate(); err != nil {
			s.writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		user.ID = id
		s.writeJSON(w, http.StatusOK, s.data.UpsertUser(user))
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.data.DeleteUser(r.PathValue("id")) {
			s.writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, count := page(s.data.ListProducts(), pageNumber(r))
		s.writeJSON(w, http.StatusOK, pageEnvelope{Count: count, Results: results})
	}
}

func (s *Server) GetProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := s.data.ProductByID(r.PathValue("id"))
		if !ok {
			s.writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		s.writeJSON(w, http.StatusOK, product)
	}
}

func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product products.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil || product.Name == "" {
			s.writeDetail(w, http.StatusBadRequest, "Valid product payload required")
			return
		}
		if product.Status == "" {
			product.Status = products.StatusActive
		}
		s.writeJSON(w, http.StatusCreated, s.data.UpsertProduct(product))
	}
}

func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, ok := s.data.ProductByID(id); !ok {
			s.writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		var product products.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			s.writeDetail(w, http.StatusBadRequest, "Valid product payload required")
			return
		}
		product.ID = id
		s.writeJSON(w, http.StatusOK, s.data.UpsertProduct(product))
	}
}

func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.data.DeleteProduct(r.PathValue("id")) {
			s.writeDetail(w, http.StatusNotFound, "Product not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, count := page(s.data.ListOrders(), pageNumber(r))
		s.writeJSON(w, http.StatusOK, pageEnvelope{Count: count, Results: results})
	}
}

func (s *Server) GetOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := s.data.OrderByID(r.PathValue("id"))
		if !ok {
			s.writeDetail(w, http.StatusNotFound, "Order not found")
			return
		}
		s.writeJSON(w, http.StatusOK, order)
	}
}

// PatchOrderHandler applies the status-only partial update used by the
// admin order screens.
func (s *Server) PatchOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := s.data.OrderByID(r.PathValue("id"))
		if !ok {
			s.writeDetail(w, http.StatusNotFound, "Order not found")
			return
		}
		var body struct {
			Status orders.StatusType `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !orders.ValidStatus(body.Status) {
			s.writeDetail(w, http.StatusBadRequest, "Valid status required")
			return
		}
		order.Status = body.Status
		s.writeJSON(w, http.StatusOK, s.data.UpsertOrder(*order))
	}
}

func (s *Server) DeleteOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.data.DeleteOrder(r.PathValue("id")) {
			s.writeDetail(w, http.StatusNotFound, "Order not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
