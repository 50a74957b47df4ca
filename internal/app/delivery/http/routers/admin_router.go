package routers

import (
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"
	"medilink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	doctorController *controllers.DoctorController,
	appointmentController *controllers.AppointmentController,
) {
	router.Use(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleAdmin))

	router.Post("/doctors", doctorController.CreateDoctor)
	router.Patch("/doctors/{doctorID}/availability", doctorController.ChangeAvailability)
	router.Get("/appointments", appointmentController.FindAllAppointments)
	router.Post("/appointments/cancel", appointmentController.CancelAppointmentByAdmin)
}
