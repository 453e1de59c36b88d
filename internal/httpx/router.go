package httpx

import (
	"net/http"
	"time"

	"cercle-be/internal/logger"
	"cercle-be/internal/middleware"
	"cercle-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Pins        *PinHandler
	Categories  *CategoryHandler
	Orders      *OrderHandler
	Memberships *MembershipHandler
	PinRequests *PinRequestHandler
	Pennes      *PenneHandler
}

// NewRouter wires the full HTTP surface: public auth endpoints, member
// routes behind JWT auth, and admin routes behind the admin role.
func NewRouter(h Handlers, uploadDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	strict := middleware.StrictRateLimiter()
	lenient := middleware.DefaultRateLimiter()

	member := middleware.RequireRole(user.RoleMember, user.RoleAdmin)
	admin := middleware.RequireRole(user.RoleAdmin)
	verifier := middleware.RequireRole(user.RoleVerifier, user.RoleAdmin)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(uploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Use(lenient.Handler)

		// Public.
		r.Group(func(r chi.Router) {
			r.Use(strict.Handler)
			r.Post("/auth/login", h.Auth.Login)
			r.Post("/auth/activate", h.Auth.Activate)
			r.Post("/auth/password-reset/request", h.Auth.RequestPasswordReset)
			r.Post("/auth/password-reset", h.Auth.ResetPassword)
		})
		r.Get("/pins", h.Pins.List)
		r.Get("/pins/{id}", h.Pins.Get)
		r.Get("/categories", h.Categories.List)

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)

			r.Group(func(r chi.Router) {
				r.Use(member)

				r.Post("/orders", h.Orders.Create)
				r.Get("/orders", h.Orders.ListMine)
				r.Patch("/orders/{id}", h.Orders.Update)
				r.Delete("/orders/{id}", h.Orders.Cancel)

				r.Get("/memberships/mine", h.Memberships.ListMine)
				r.Post("/memberships/token", h.Memberships.IssueToken)

				r.Post("/pin-requests", h.PinRequests.Create)
				r.Get("/pin-requests", h.PinRequests.ListMine)

				r.Post("/pennes", h.Pennes.Create)
				r.Get("/pennes", h.Pennes.ListMine)
				r.Patch("/pennes/{id}", h.Pennes.Update)
			})

			r.Group(func(r chi.Router) {
				r.Use(verifier)

				r.Get("/verify", h.Memberships.Verify)
				r.Post("/memberships/verify-token", h.Memberships.Verify)
			})

			// Admin.
			r.Route("/admin", func(r chi.Router) {
				r.Use(admin)

				r.Post("/pins", h.Pins.Create)
				r.Patch("/pins/{id}", h.Pins.Update)
				r.Delete("/pins/{id}", h.Pins.Delete)
				r.Put("/pins/{id}/stock", h.Pins.SetStock)

				r.Post("/categories", h.Categories.Add)
				r.Delete("/categories/{name}", h.Categories.Delete)

				r.Get("/orders", h.Orders.ListAll)
				r.Patch("/orders/{id}", h.Orders.UpdateStatus)
				r.Delete("/orders/{id}", h.Orders.DeleteAny)

				r.Post("/users", h.Users.Create)
				r.Get("/users", h.Users.List)
				r.Patch("/users/{id}/role", h.Users.ChangeRole)
				r.Delete("/users/{id}", h.Users.Delete)

				r.Put("/users/{id}/cards", h.Memberships.Upsert)
				r.Get("/users/{id}/cards", h.Memberships.ListForUser)
				r.Delete("/users/{id}/cards", h.Memberships.DeleteForUser)

				r.Get("/pin-requests", h.PinRequests.ListAll)
				r.Patch("/pin-requests/{id}", h.PinRequests.SetStatus)
				r.Delete("/pin-requests/{id}", h.PinRequests.Delete)

				r.Get("/pennes", h.Pennes.ListAll)
				r.Patch("/pennes/{id}", h.Pennes.SetStatus)
				r.Delete("/pennes/{id}", h.Pennes.Delete)
			})
		})
	})

	return r
}
