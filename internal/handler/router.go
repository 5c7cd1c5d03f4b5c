package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/dkravets/renthub-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса аренды жилья.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(h.sessionsMW.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", h.ListListings)
		r.Get("/listings/{id}", h.GetListing)

		r.Route("/flow", func(r chi.Router) {
			r.Get("/", h.FlowState)
			r.Post("/select", h.SelectListing)
			r.Post("/payment", h.RequestPayment)
			r.Post("/rental", h.RequestRental)
			r.Post("/rental/advance", h.AdvanceApplication)
			r.Post("/rental/retreat", h.RetreatApplication)
			r.Post("/rental/submit", h.SubmitApplication)
			r.Post("/pay", h.Pay)
			r.Post("/back", h.Back)
			r.Post("/reset", h.Reset)
		})

		r.Post("/locate", h.Locate)

		r.Post("/session/login", h.Login)
		r.Post("/session/quick", h.QuickLogin)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.sessionsMW.RequirePrivileged)

			r.Get("/apartments", h.AdminApartments)
			r.Post("/apartments", h.CreateApartment)
			r.Put("/apartments/{id}", h.UpdateApartment)
			r.Delete("/apartments/{id}", h.DeleteApartment)

			r.Get("/tenants", h.AdminTenants)
			r.Get("/payments", h.AdminPayments)
			r.Get("/analytics", h.AdminAnalytics)
			r.Get("/dashboard", h.AdminDashboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
