package routes

import (
	"net/http"
	"time"

	"github.com/umardraz9/mlmpk-sub007/config"
	"github.com/umardraz9/mlmpk-sub007/controllers/auth"
	"github.com/umardraz9/mlmpk-sub007/controllers/users"
	"github.com/umardraz9/mlmpk-sub007/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers all user-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router, cfg *config.Config) {
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	// The geo gate wraps auth on the task routes: a deny-listed country is
	// answered 403 before credentials are even looked at.
	geoBlock := middleware.GeoBlock(cfg, nil)

	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)

	taskCtl := users.NewTaskController(cfg)
	api.Handle("/users/tasks", userLimiter.Middleware(geoBlock(middleware.AuthMiddleware(http.HandlerFunc(taskCtl.List))))).Methods(http.MethodGet)
	api.Handle("/users/tasks/{id:[0-9]+}/start", userLimiter.Middleware(geoBlock(middleware.AuthMiddleware(http.HandlerFunc(taskCtl.Start))))).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id:[0-9]+}/complete", userLimiter.Middleware(geoBlock(middleware.AuthMiddleware(http.HandlerFunc(taskCtl.Complete))))).Methods(http.MethodPost)

	api.Handle("/users/profile", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ProfileHandler)))).Methods(http.MethodGet)
	api.Handle("/users/transactions", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetTransactionHistory)))).Methods(http.MethodGet)
	api.Handle("/users/transactions/{type}", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetTransactionHistory)))).Methods(http.MethodGet)
}
