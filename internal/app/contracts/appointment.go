package contracts

import (
	"context"

	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, userID string, request *requests.BookAppointment) (*responses.BookAppointment, error)
	CancelAppointment(ctx context.Context, userID string, request *requests.CancelAppointment) error
	ListUserAppointments(ctx context.Context, userID string) ([]responses.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error)
	ListAllAppointments(ctx context.Context) ([]responses.Appointment, error)
	CompleteAppointment(ctx context.Context, doctorID string, request *requests.CompleteAppointment) error
	CancelAppointmentByAdmin(ctx context.Context, request *requests.CancelAppointment) error
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointmentModel *models.Appointment) (appointmentID string, err error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	ListPendingPaidOrders(ctx context.Context) ([]models.Appointment, error)

	MarkCancelled(ctx context.Context, appointmentID string) error
	AttachPaymentOrder(ctx context.Context, appointmentID, orderID string) error
	// MarkPaid flips the payment flag only when the appointment is still
	// unpaid and not cancelled. It reports whether this call did the flip;
	// false with a nil error means someone already did.
	MarkPaid(ctx context.Context, appointmentID string, detail *models.PaymentDetail) (bool, error)
	MarkCompleted(ctx context.Context, appointmentID string) error
	SetMeetLink(ctx context.Context, appointmentID, meetLink string) error
	SetInvoiceObject(ctx context.Context, appointmentID, objectName string) error
	MarkConfirmationSent(ctx context.Context, appointmentID string) error
}
