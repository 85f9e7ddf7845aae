package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/accounts/{accountID}", func(r chi.Router) {
		r.Post("/deposits", h.Deposit)
		r.Post("/withdrawals", h.Withdraw)
		r.Get("/balance", h.Balance)
		r.Get("/statement", h.Statement)
	})

	return r
}
