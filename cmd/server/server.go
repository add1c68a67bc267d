// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/openfield/courtbook/internal/api"
	"github.com/openfield/courtbook/internal/api/courts"
	"github.com/openfield/courtbook/internal/api/reservations"
	"github.com/openfield/courtbook/internal/api/users"
	"github.com/openfield/courtbook/internal/config"
	"github.com/openfield/courtbook/internal/ratelimit"
)

const shutdownTimeout = 30 * time.Second

func newServer(cfg *config.Config, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		limiter.Middleware,
		api.WithRequestID,
		api.WithContentType,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Court routes
	mux.HandleFunc("POST /api/v1/courts", courts.HandleCreateCourt)
	mux.HandleFunc("GET /api/v1/courts", courts.HandleListCourts)
	mux.HandleFunc("GET /api/v1/courts/{id}", courts.HandleGetCourt)
	mux.HandleFunc("POST /api/v1/courts/{id}/maintenance", courts.HandleSetMaintenance)
	mux.HandleFunc("POST /api/v1/courts/{id}/available", courts.HandleSetAvailable)
	mux.HandleFunc("POST /api/v1/courts/{id}/inactive", courts.HandleSetInactive)

	// User routes
	mux.HandleFunc("POST /api/v1/users", users.HandleCreateUser)

	// Reservation routes
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleCreateReservation)
	mux.HandleFunc("GET /api/v1/reservations", reservations.HandleListReservations)
	mux.HandleFunc("GET /api/v1/reservations/{id}", reservations.HandleGetReservation)
	mux.HandleFunc("POST /api/v1/reservations/{id}/confirm", reservations.HandleConfirm)
	mux.HandleFunc("POST /api/v1/reservations/{id}/start", reservations.HandleStart)
	mux.HandleFunc("POST /api/v1/reservations/{id}/complete", reservations.HandleComplete)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleCancel)
	mux.HandleFunc("POST /api/v1/reservations/{id}/revert", reservations.HandleRevert)
}
