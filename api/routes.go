package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Register, login and the health check
// are public; everything else sits behind the bearer middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.health())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/me", handlers.authHandler.me())

			r.Get("/projects", handlers.projectHandler.listProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Get("/projects/{projectID}/testimonials", handlers.testimonialHandler.listTestimonials())
			r.Post("/projects/{projectID}/testimonials", handlers.testimonialHandler.createTestimonial())
			r.Get("/testimonials/{testimonialID}", handlers.testimonialHandler.getTestimonial())
			r.Put("/testimonials/{testimonialID}", handlers.testimonialHandler.updateTestimonial())
			r.Delete("/testimonials/{testimonialID}", handlers.testimonialHandler.deleteTestimonial())
			r.Post("/testimonials/{testimonialID}/approve", handlers.testimonialHandler.toggleApprove())
			r.Post("/testimonials/{testimonialID}/feature", handlers.testimonialHandler.toggleFeature())

			r.Get("/projects/{projectID}/tags", handlers.tagHandler.listTags())
			r.Post("/projects/{projectID}/tags", handlers.tagHandler.createTag())
			r.Put("/tags/{tagID}", handlers.tagHandler.updateTag())
			r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())
			r.Put("/testimonials/{testimonialID}/tags", handlers.tagHandler.setTestimonialTags())
		})
	})
}
