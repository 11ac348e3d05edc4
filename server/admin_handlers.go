package server

import (
	"encoding/json"
	"net/http"

	"github.com/oleastore/go-admin-console/orders"
	"github.com/oleastore/go-admin-console/products"
	"github.com/oleastore/go-admin-console/users"
)

// USERS

func (s *Server) AdminListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.api.Users.List(r.Context(), pageNumber(r))
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (s *Server) AdminGetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.api.Users.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) AdminCreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user users.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		created, err := s.api.Users.Create(r.Context(), user)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) AdminUpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user users.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		updated, err := s.api.Users.Update(r.Context(), r.PathValue("id"), user)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.Users.Delete(r.Context(), r.PathValue("id")); err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PRODUCTS

func (s *Server) AdminListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.api.Products.List(r.Context(), pageNumber(r))
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (s *Server) AdminGetProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.api.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func (s *Server) AdminCreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product products.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		created, err := s.api.Products.Create(r.Context(), product)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) AdminUpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product products.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		updated, err := s.api.Products.Update(r.Context(), r.PathValue("id"), product)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) AdminDeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ORDERS

func (s *Server) AdminListOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.api.Orders.List(r.Context(), pageNumber(r))
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (s *Server) AdminGetOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := s.api.Orders.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

// AdminPatchOrderHandler updates an order's status, the only mutable field
// an operator can touch on an order.
func (s *Server) AdminPatchOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status orders.StatusType `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		if !orders.ValidStatus(req.Status) {
			writeDetail(w, http.StatusBadRequest, "Invalid order status")
			return
		}
		updated, err := s.api.Orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
		if err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) AdminDeleteOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.Orders.Delete(r.Context(), r.PathValue("id")); err != nil {
			s.writeUpstreamError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
