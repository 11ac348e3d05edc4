package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oleastore/go-admin-console/orders"
	"github.com/oleastore/go-admin-console/products"
	"github.com/oleastore/go-admin-console/users"
)

// pagePath appends the backend's page-number query parameter. Page 0 means
// "whatever the backend considers the first page".
func pagePath(path string, page int) string {
	if page <= 0 {
		return path
	}
	return fmt.Sprintf("%s?page=%d", path, page)
}

// UserPage is one page of the users listing.
type UserPage struct {
	Count    int          `json:"count"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []users.User `json:"results"`
}

// UsersService manages the /users/ resource.
type UsersService struct {
	client *Client
}

func (s *UsersService) List(ctx context.Context, page int) (*UserPage, error) {
	var result UserPage
	if err := s.client.do(ctx, http.MethodGet, pagePath(usersPath, page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*users.User, error) {
	var result users.User
	if err := s.client.do(ctx, http.MethodGet, usersPath+id+"/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *UsersService) Create(ctx context.Context, user users.User) (*users.User, error) {
	var result users.User
	if err := s.client.do(ctx, http.MethodPost, usersPath, user, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *UsersService) Update(ctx context.Context, id string, user users.User) (*users.User, error) {
	var result users.User
	if err := s.client.do(ctx, http.MethodPut, usersPath+id+"/", user, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, usersPath+id+"/", nil, nil)
}

// ProductPage is one page of the products listing.
type ProductPage struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []products.Product `json:"results"`
}

// ProductsService manages the /products/ resource.
type ProductsService struct {
	client *Client
}

func (s *ProductsService) List(ctx context.Context, page int) (*ProductPage, error) {
	var result ProductPage
	if err := s.client.do(ctx, http.MethodGet, pagePath(productsPath, page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ProductsService) Get(ctx context.Context, id string) (*products.Product, error) {
	var result products.Product
	if err := s.client.do(ctx, http.MethodGet, productsPath+id+"/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ProductsService) Create(ctx context.Context, product products.Product) (*products.Product, error) {
	var result products.Product
	if err := s.client.do(ctx, http.MethodPost, productsPath, product, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ProductsService) Update(ctx context.Context, id string, product products.Product) (*products.Product, error) {
	var result products.Product
	if err := s.client.do(ctx, http.MethodPut, productsPath+id+"/", product, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ProductsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, productsPath+id+"/", nil, nil)
}

// OrderPage is one page of the orders listing.
type OrderPage struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []orders.Order `json:"results"`
}

// OrdersService manages the /orders/ resource. Orders are created by the
// storefront; the console lists them and moves them between states.
type OrdersService struct {
	client *Client
}

func (s *OrdersService) List(ctx context.Context, page int) (*OrderPage, error) {
	var result OrderPage
	if err := s.client.do(ctx, http.MethodGet, pagePath(ordersPath, page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *OrdersService) Get(ctx context.Context, id string) (*orders.Order, error) {
	var result orders.Order
	if err := s.client.do(ctx, http.MethodGet, ordersPath+id+"/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateStatus performs the status-only partial update the admin order
// screens use.
func (s *OrdersService) UpdateStatus(ctx context.Context, id string, status orders.StatusType) (*orders.Order, error) {
	payload := map[string]orders.StatusType{"status": status}
	var result orders.Order
	if err := s.client.do(ctx, http.MethodPatch, ordersPath+id+"/", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *OrdersService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, ordersPath+id+"/", nil, nil)
}
