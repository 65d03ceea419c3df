package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, log *zap.SugaredLogger, allowedOrigins string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(CORS(allowedOrigins))

	usersHandler := &UsersHandler{DB: db}
	availabilitiesHandler := &AvailabilitiesHandler{DB: db, Log: log}
	marketplaceHandler := &MarketplaceHandler{DB: db, Log: log}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "RoomSync API Server",
			"status":  "running",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/users", usersHandler.Create)
		r.Get("/users/{id}", usersHandler.Get)

		r.Post("/availabilities", availabilitiesHandler.Create)
		r.Get("/availabilities", availabilitiesHandler.List)
		r.Get("/availabilities/{id}", availabilitiesHandler.Get)
		r.Put("/availabilities/{id}/status", availabilitiesHandler.UpdateStatus)

		r.Post("/marketplace", marketplaceHandler.Create)
		r.Get("/marketplace", marketplaceHandler.List)
		r.Get("/marketplace/{id}", marketplaceHandler.Get)
		r.Put("/marketplace/{id}/status", marketplaceHandler.UpdateStatus)
	})

	return r
}
