package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public Routes
	RouteIndex = "/"
	RouteLogin = "/login"

	// Auth Routes
	RouteAuthLogin   = "/auth/login"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthSession = "/auth/session"

	// Admin Routes - Users
	RouteAdminUsers = "/admin/users"
	RouteAdminUser  = "/admin/users/{id}"

	// Admin Routes - Products
	RouteAdminProducts = "/admin/products"
	RouteAdminProduct  = "/admin/products/{id}"

	// Admin Routes - Orders
	RouteAdminOrders = "/admin/orders"
	RouteAdminOrder  = "/admin/orders/{id}"
)
