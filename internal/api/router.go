package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/happythoughts/thoughts-service/internal/api/recovery"
	"github.com/happythoughts/thoughts-service/internal/api/respond"
	"github.com/happythoughts/thoughts-service/internal/auth"
	"github.com/happythoughts/thoughts-service/internal/services"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// NewRouter wires the HTTP routes over the given store. The token manager
// both issues tokens at login and verifies them on protected endpoints.
func NewRouter(st store.Store, tokens *auth.TokenManager, bcryptCost int) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Domain services
	thoughtService := services.NewThoughtService(st)
	userService := services.NewUserService(st, tokens, bcryptCost)

	// Handlers
	authenticator := auth.NewTokenAuthenticator(tokens, st.Users())
	thoughtHandler := NewThoughtHandler(thoughtService, authenticator)
	userHandler := NewUserHandler(userService, authenticator)
	healthHandler := NewHealthHandler(st)

	// Health endpoints
	router.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	// Auth endpoints
	router.HandleFunc("/auth/register", userHandler.Register).Methods("POST")
	router.HandleFunc("/auth/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/auth/me", userHandler.Me).Methods("GET")

	// Thought endpoints
	router.HandleFunc("/thoughts", thoughtHandler.ListThoughts).Methods("GET")
	router.HandleFunc("/thoughts", thoughtHandler.CreateThought).Methods("POST")
	router.HandleFunc("/thoughts/{thoughtId}", thoughtHandler.GetThought).Methods("GET")
	router.HandleFunc("/thoughts/{thoughtId}", thoughtHandler.ReplaceThought).Methods("PUT")
	router.HandleFunc("/thoughts/{thoughtId}", thoughtHandler.PatchThought).Methods("PATCH")
	router.HandleFunc("/thoughts/{thoughtId}", thoughtHandler.DeleteThought).Methods("DELETE")
	router.HandleFunc("/thoughts/{thoughtId}/like", thoughtHandler.LikeThought).Methods("POST")

	// Welcome endpoint: an index of every registered route, registered
	// last so the walk below sees the full table.
	router.HandleFunc("/", welcomeHandler(router)).Methods("GET")

	return router
}

type routeInfo struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// welcomeHandler serves a self-describing index of the API so a browser
// hitting the root sees where to go next.
func welcomeHandler(router *mux.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var routes []routeInfo
		_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			path, err := route.GetPathTemplate()
			if err != nil {
				return nil
			}
			methods, err := route.GetMethods()
			if err != nil {
				return nil
			}
			routes = append(routes, routeInfo{Path: path, Methods: methods})
			return nil
		})
		respond.WriteSuccess(w, http.StatusOK, map[string]interface{}{
			"message":   "Welcome to the Happy Thoughts API",
			"endpoints": routes,
		})
	}
}
