package http

import (
	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTrustedRealIP,
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		withRequestMetadata,
		withGZip,
	)
	if timeout := h.cfg.Server.RequestTimeout; timeout > 0 {
		router.Use(middleware.Timeout(timeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Use(h.withAuthRateLimit)
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/auth/{provider}-mobile", h.oauthMobile)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/me", h.me)

			r.Route("/users", func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Get("/", h.listUsers)
				r.With(h.observe(models.ActionUpdate, models.ResourceUser)).Patch("/{id}/admin", h.setAdmin)
				r.With(h.observe(models.ActionDelete, models.ResourceUser)).Delete("/{id}", h.deleteUser)
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", h.listLocations)
				r.Get("/tree", h.locationTree)
				r.With(h.observe(models.ActionCreate, models.ResourceLocation)).Post("/", h.createLocation)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.getLocation)
					r.Get("/children", h.locationChildren)
					r.With(h.observe(models.ActionUpdate, models.ResourceLocation)).Put("/", h.replaceLocation)
					r.With(h.observe(models.ActionUpdate, models.ResourceLocation)).Patch("/", h.updateLocation)
					r.With(h.observe(models.ActionDelete, models.ResourceLocation)).Delete("/", h.deleteLocation)
				})
			})

			r.Route("/boxes", func(r chi.Router) {
				r.Get("/", h.listBoxes)
				r.With(h.observe(models.ActionCreate, models.ResourceBox)).Post("/", h.createBox)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.getBox)
					r.With(h.observe(models.ActionUpdate, models.ResourceBox)).Put("/", h.replaceBox)
					r.With(h.observe(models.ActionUpdate, models.ResourceBox)).Patch("/", h.updateBox)
					r.With(h.observe(models.ActionDelete, models.ResourceBox)).Delete("/", h.deleteBox)
				})
			})

			r.Route("/items", func(r chi.Router) {
				r.Get("/", h.listItems)
				r.With(h.observe(models.ActionCreate, models.ResourceItem)).Post("/", h.createItem)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.getItem)
					r.With(h.observe(models.ActionUpdate, models.ResourceItem)).Put("/", h.replaceItem)
					r.With(h.observe(models.ActionUpdate, models.ResourceItem)).Patch("/", h.updateItem)
					r.With(h.observe(models.ActionDelete, models.ResourceItem)).Delete("/", h.deleteItem)

					// image rows are recorded by the image service itself
					r.Post("/image", h.uploadImage)
					r.Get("/image", h.getImage)
					r.Delete("/image", h.deleteImage)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.listCategories)
				r.Post("/", h.createCategory)
				r.Put("/{id}", h.updateCategory)
				r.Delete("/{id}", h.deleteCategory)
			})

			r.Get("/activities", h.listActivities)
			r.Get("/activities/{entityType}/{entityId}", h.entityActivities)

			r.Route("/shares", func(r chi.Router) {
				r.Get("/", h.listReceivedShares)
				r.Get("/sent", h.listSentShares)
				r.Post("/", h.createShare)
				r.Delete("/{id}", h.deleteShare)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.listNotifications)
				r.Get("/unread-count", h.unreadCount)
				r.Patch("/read-all", h.markAllNotificationsRead)
				r.Patch("/{id}/read", h.markNotificationRead)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/{resourceType}/{resourceId}", h.listComments)
				r.Post("/", h.createComment)
				r.Delete("/{id}", h.deleteComment)
			})

			r.Get("/export/items.csv", h.exportItemsCSV)
			r.Post("/import/items/preview", h.previewImport)
			r.Post("/import/items", h.importItems)
			r.Get("/backup", h.backup)
			r.Post("/backup/restore", h.restore)
		})
	})

	router.NotFound(notFoundHandler)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
