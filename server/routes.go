package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.StdMiddleware()...))

	// Browser preflights arrive as OPTIONS on any path; the CORS middleware
	// answers them before this handler is reached.
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.StdMiddleware()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthSession, ChainMiddleware(s.SessionHandler(), s.StdMiddleware()...))

	// Admin routes (guarded: logged-in admins only)
	s.registerAdmin(http.MethodGet, RouteAdminUsers, s.AdminListUsersHandler())
	s.registerAdmin(http.MethodGet, RouteAdminUser, s.AdminGetUserHandler())
	s.registerAdmin(http.MethodPost, RouteAdminUsers, s.AdminCreateUserHandler())
	s.registerAdmin(http.MethodPut, RouteAdminUser, s.AdminUpdateUserHandler())
	s.registerAdmin(http.MethodDelete, RouteAdminUser, s.AdminDeleteUserHandler())

	s.registerAdmin(http.MethodGet, RouteAdminProducts, s.AdminListProductsHandler())
	s.registerAdmin(http.MethodGet, RouteAdminProduct, s.AdminGetProductHandler())
	s.registerAdmin(http.MethodPost, RouteAdminProducts, s.AdminCreateProductHandler())
	s.registerAdmin(http.MethodPut, RouteAdminProduct, s.AdminUpdateProductHandler())
	s.registerAdmin(http.MethodDelete, RouteAdminProduct, s.AdminDeleteProductHandler())

	s.registerAdmin(http.MethodGet, RouteAdminOrders, s.AdminListOrdersHandler())
	s.registerAdmin(http.MethodGet, RouteAdminOrder, s.AdminGetOrderHandler())
	s.registerAdmin(http.MethodPatch, RouteAdminOrder, s.AdminPatchOrderHandler())
	s.registerAdmin(http.MethodDelete, RouteAdminOrder, s.AdminDeleteOrderHandler())
}

func (s *Server) registerAdmin(method, route string, handler http.HandlerFunc) {
	s.RegisterRouteHandler(method+" "+route, ChainMiddleware(handler, s.StdMiddleware(s.RequireAdmin())...))
}
