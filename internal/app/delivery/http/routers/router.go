package routers

import (
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func SetupRoutes(
	router *chi.Mux,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	userController *controllers.UserController,
	doctorController *controllers.DoctorController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(
		internalConfig.App.MaxRequests,
		time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
	)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(logger))
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			attachAuthRoutes(r, userController)
		})

		r.Route("/users", func(r chi.Router) {
			attachUserRoutes(r, middlewares, userController)
		})

		r.Route("/doctors", func(r chi.Router) {
			attachDoctorRoutes(r, doctorController)
		})

		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, middlewares, appointmentController)
		})

		r.Route("/payments", func(r chi.Router) {
			attachPaymentRoutes(r, middlewares, paymentController)
		})

		r.Route("/admin", func(r chi.Router) {
			attachAdminRoutes(r, middlewares, doctorController, appointmentController)
		})

		r.Route("/doctor", func(r chi.Router) {
			attachDoctorPanelRoutes(r, middlewares, appointmentController)
		})
	})
}
