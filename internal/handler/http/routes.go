package http

import (
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/metrics"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultRequestTimeout = 30 * time.Second

func (h *Handler) Init() *chi.Mux {
	timeout := h.requestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(metrics.Middleware)
	router.Use(h.withCORS)
	router.Use(middleware.Timeout(timeout))
	router.Use(middleware.Compress(5))

	router.Get("/health", h.health)
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.version)

		r.Route("/user", func(r chi.Router) {
			// routes without authorization
			r.Post("/register", h.register)
			r.Post("/login", h.login)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Put("/update", h.updateCredentials)
				r.Get("/id", h.getUser)

				r.With(requireRoles(models.RoleAdministrator)).Get("/all", h.getUsers)
				r.With(requireRoles(models.RoleAdministrator, models.RoleOrganizer)).Get("/role/{role}", h.getUsersByRole)

				r.Group(func(r chi.Router) {
					r.Use(requireRoles(models.RoleAdministrator))
					r.Post("/add", h.addUser)
					r.Put("/id", h.updateUser)
					r.Delete("/id", h.deleteUser)
				})

				r.Group(func(r chi.Router) {
					r.Use(requireRoles(models.RoleClient))
					r.Post("/wishlist/add", h.addToWishlist)
					r.Delete("/wishlist/remove", h.removeFromWishlist)
					r.Get("/{userId}/wishlist", h.getWishlist)
				})
			})
		})

		r.Route("/location", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/all", h.getLocations)
			r.Get("/{id}", h.getLocation)

			r.Group(func(r chi.Router) {
				r.Use(requireRoles(models.RoleAdministrator, models.RoleOrganizer))
				r.Post("/create", h.createLocation)
				r.Put("/{id}", h.updateLocation)
				r.Delete("/{id}", h.deleteLocation)
			})
		})

		r.Route("/event", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/all", h.getEvents)
			r.Get("/{id}", h.getEvent)

			r.With(requireRoles(models.RoleOrganizer)).Get("/organizer/{organizerId}", h.getEventsByOrganizer)

			r.Group(func(r chi.Router) {
				r.Use(requireRoles(models.RoleAdministrator, models.RoleOrganizer))
				r.Post("/create", h.createEvent)
				r.Put("/{id}", h.updateEvent)
				r.Delete("/{id}", h.deleteEvent)
				r.Put("/sale/{id}", h.setEventOnSale)
			})
		})

		r.Route("/ticket", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/{id}", h.getTicket)
			r.With(requireRoles(models.RoleAdministrator)).Get("/all", h.getTickets)
			r.With(requireRoles(models.RoleAdministrator, models.RoleOrganizer)).Get("/event/{eventId}", h.getTicketsByEvent)

			r.Group(func(r chi.Router) {
				r.Use(requireRoles(models.RoleClient))
				r.Post("/create", h.purchaseTickets)
				r.Put("/update", h.updateTicket)
				r.Delete("/{id}", h.deleteTicket)
				r.Get("/user/{userId}", h.getTicketsByUser)
				r.Get("/export/{ticketId}", h.exportTicket)
			})
		})
	})

	return router
}
