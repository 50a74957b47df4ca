package routers

import (
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"
	"medilink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/create-order", paymentController.CreateOrder)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/verify", paymentController.VerifyPayment)
}
