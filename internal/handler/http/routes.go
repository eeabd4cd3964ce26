package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Get("/", h.root)
	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/v1", func(r chi.Router) {
		// request/response endpoints are bounded by the request timeout;
		// the websocket lives as long as the peer keeps it open
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(h.requestTimeout))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/verify-email", h.verifyEmail)
				r.Post("/verify-email-otp", h.verifyEmailOTP)
				r.Post("/register", h.register)
				r.Post("/login", h.login)
				r.Post("/token", h.token)
			})

			r.With(h.auth).Get("/user/", h.currentUser)
		})

		r.Get("/ws/chat/{client_id}", h.chat)
	})

	return router
}
