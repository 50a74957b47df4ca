package routers

import (
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.With(middlewares.Authenticate).Get("/profile", userController.GetProfile)
	router.With(middlewares.Authenticate).Put("/profile", userController.UpdateProfile)
}
