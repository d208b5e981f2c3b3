package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/app/config"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/app/http/handlers"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/app/http/middleware"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/infra/db/postgres"
)

func NewRouter(cfg config.Config, db *postgres.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(db, cfg)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Route("/owners/{id}", func(r chi.Router) {
			r.Get("/", h.GetOwner)
			r.Patch("/", h.UpdateOwner)
			r.Post("/assets", h.UploadOwnerAssets)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Get("/{id}", h.GetClient)
			r.Patch("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Post("/", h.CreateTransaction)
			r.Get("/export", h.ExportTransactions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetTransaction)
				r.Patch("/", h.UpdateTransaction)
				r.Delete("/", h.DeleteTransaction)
				r.Get("/items", h.ListTransactionItems)
				r.Get("/pdf", h.DownloadTransactionPDF)
			})
		})

		r.Get("/reports/dashboard", h.Dashboard)
	})

	return r
}
