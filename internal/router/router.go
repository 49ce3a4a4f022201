package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Login, refresh and
// logout are unauthenticated (they carry their own credentials); /v1/me
// sits behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(handler.RoleOperator, handler.RoleViewer))
	me.GET("/me", a.Me)
}

// RegisterParking registers the facility routes.
//
// The read-only listings are public, like a departures board: anyone
// may see the slot map, free slots, occupied slots, the waiting queue
// and the history.  They run behind the rate limiter and the response
// cache.  Mutations (entry, exit, passes, emergency reset) require an
// OPERATOR token, and the revenue report accepts OPERATOR or VIEWER.
func RegisterParking(e *echo.Echo, p *handler.ParkingHandler, b *handler.BrowseHandler,
	jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {

	pub := e.Group("/v1/parking", rateLimit, cache)
	pub.GET("/slots", b.Slots)
	pub.GET("/slots/free", b.FreeSlots)
	pub.GET("/vehicles", b.Vehicles)
	pub.GET("/vehicles/:id", b.Vehicle)
	pub.GET("/waiting", b.Waiting)
	pub.GET("/history", b.History)

	ops := e.Group("/v1/parking")
	ops.Use(middleware.JWTAuth(jwtSecret))
	ops.Use(middleware.RequireRole(handler.RoleOperator))
	ops.POST("/entries", p.Entry)
	ops.POST("/exits", p.Exit)
	ops.POST("/passes", p.RegisterPass)
	ops.POST("/emergency-reset", p.EmergencyReset)

	books := e.Group("/v1/parking")
	books.Use(middleware.JWTAuth(jwtSecret))
	books.Use(middleware.RequireRole(handler.RoleOperator, handler.RoleViewer))
	books.GET("/revenue", b.Revenue)
}
