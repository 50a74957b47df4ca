package routers

import (
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"
	"medilink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/book", appointmentController.BookAppointment)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/cancel", appointmentController.CancelAppointment)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Get("/", appointmentController.FindUserAppointments)
}
