package routers

import (
	"medilink-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, userController *controllers.UserController) {
	router.Post("/register", userController.Register)
	router.Post("/login", userController.Login)
	router.Post("/google", userController.GoogleLogin)
}
