package routers

import (
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"
	"medilink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

// Routes for a logged-in doctor acting on their own schedule.
func attachDoctorPanelRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	appointmentController *controllers.AppointmentController,
) {
	router.Use(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor))

	router.Get("/appointments", appointmentController.FindDoctorAppointments)
	router.Post("/appointments/complete", appointmentController.CompleteAppointment)
}
