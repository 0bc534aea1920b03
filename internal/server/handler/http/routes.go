package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler serving the account,
// profile, catalog and admin API. It applies request logging and token
// identity resolution to every route; JSON endpoints additionally enforce
// the application/json content type. The profile-image upload stays
// outside the content-type guard because it carries multipart form data.
//
// Routes:
//
//	POST   /api/auth/login            → authHandler.Login
//	GET    /api/user                  → accountHandler.List
//	POST   /api/user                  → accountHandler.Signup
//	GET    /api/user/profile          → accountHandler.GetProfile
//	PUT    /api/user/profile          → accountHandler.UpdateProfile
//	POST   /api/user/profile-image    → accountHandler.UploadImage
//	DELETE /api/user/profile-image    → accountHandler.DeleteImage
//	GET    /api/user/{id}             → accountHandler.GetByID
//	DELETE /api/user/{id}             → accountHandler.DeleteByID
//	GET    /api/item                  → itemHandler.List
//	POST   /api/item                  → itemHandler.Create
//	GET    /api/item/{id}             → itemHandler.GetByID
//	DELETE /api/item/{id}             → itemHandler.DeleteByID
//	GET    /api/admin/initial         → adminHandler.Initial
func NewRouter(
	authHandler *AuthHandler,
	accountHandler *AccountHandler,
	itemHandler *ItemHandler,
	adminHandler *AdminHandler,
	logger *zap.Logger,
	tokenSecret []byte,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the session token into a principal, when present
	r.Use(middleware.WithIdentity(tokenSecret))

	json := chiMiddleware.AllowContentType("application/json")

	r.Route("/api", func(r chi.Router) {
		r.With(json).Post("/auth/login", authHandler.Login)

		r.Route("/user", func(r chi.Router) {
			r.Get("/", accountHandler.List)
			r.With(json).Post("/", accountHandler.Signup)

			r.Get("/profile", accountHandler.GetProfile)
			r.With(json).Put("/profile", accountHandler.UpdateProfile)

			r.Post("/profile-image", accountHandler.UploadImage)
			r.Delete("/profile-image", accountHandler.DeleteImage)

			r.Get("/{id}", accountHandler.GetByID)
			r.Delete("/{id}", accountHandler.DeleteByID)
		})

		r.Route("/item", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.With(json).Post("/", itemHandler.Create)
			r.Get("/{id}", itemHandler.GetByID)
			r.Delete("/{id}", itemHandler.DeleteByID)
		})

		r.Get("/admin/initial", adminHandler.Initial)
	})

	return r
}
