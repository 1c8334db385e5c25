package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteRoot = "/"

	// Account Routes
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"
	RouteLogout         = "/logout"

	// Dashboard Routes
	RouteDashboard     = "/dashboard"
	RouteClients       = "/clients"
	RouteClient        = "/clients/{id}"
	RouteClientDelete  = "/clients/{id}/delete"
	RouteClientNotes   = "/clients/{id}/notes"
	RouteNote          = "/notes/{id}"
	RouteNoteDelete    = "/notes/{id}/delete"
	RouteProjects      = "/projects"
	RouteProject       = "/projects/{id}"
	RouteProjectDelete = "/projects/{id}/delete"
	RoutePayments      = "/payments"
	RouteSettings      = "/settings"

	// Operational Routes
	RouteMetrics = "/metrics"
	RouteHealth  = "/healthz"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file...}"
)
