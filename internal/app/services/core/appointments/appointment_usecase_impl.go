package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
	"medilink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	UserRepository        contracts.UserRepository
	Storage               contracts.Storage
	InvoiceBucket         string
	InvoiceUrlExpiry      time.Duration
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentMongoRepository contracts.AppointmentRepository,
	doctorMongoRepository contracts.DoctorRepository,
	userMongoRepository contracts.UserRepository,
	storage contracts.Storage,
	invoiceBucket string,
	invoiceUrlExpiry time.Duration,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentMongoRepository,
			DoctorRepository:      doctorMongoRepository,
			UserRepository:        userMongoRepository,
			Storage:               storage,
			InvoiceBucket:         invoiceBucket,
			InvoiceUrlExpiry:      invoiceUrlExpiry,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, userID string, request *requests.BookAppointment) (*responses.BookAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorNotAvailable(nil)
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	reserved, err := uc.DoctorRepository.ReserveSlot(ctx, request.DoctorID, request.SlotDate, request.SlotTime)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, exceptions.ErrSlotNotAvailable(nil)
	}

	appointment := &models.Appointment{
		UserID:          userID,
		DoctorID:        request.DoctorID,
		SlotDate:        request.SlotDate,
		SlotTime:        request.SlotTime,
		AppointmentType: request.AppointmentType,
		UserData: models.UserSnapshot{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		DoctorData: models.DoctorSnapshot{
			Name:       doctor.Name,
			Email:      doctor.Email,
			Speciality: doctor.Speciality,
			Degree:     doctor.Degree,
			Fees:       doctor.Fees,
			Address:    doctor.Address,
		},
		Amount: doctor.Fees,
		Date:   time.Now().UnixMilli(),
	}

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		// The slot was already taken out of circulation, give it back.
		if releaseErr := uc.DoctorRepository.ReleaseSlot(ctx, request.DoctorID, request.SlotDate, request.SlotTime); releaseErr != nil {
			uc.Log.Error("appointmentUsecase.BookAppointment error releasing slot after failed insert",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.BookAppointment booked",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return &responses.BookAppointment{AppointmentID: appointmentID}, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, userID string, request *requests.CancelAppointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotExist(nil)
	}
	if appointment.UserID != userID {
		return exceptions.ErrNotResourceOwner(fmt.Errorf("appointment %s belongs to another user", request.AppointmentID))
	}

	return uc.cancel(ctx, appointment)
}

func (uc *appointmentUsecase) CancelAppointmentByAdmin(ctx context.Context, request *requests.CancelAppointment) error {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotExist(nil)
	}
	return uc.cancel(ctx, appointment)
}

func (uc *appointmentUsecase) cancel(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Cancelled {
		return exceptions.ErrAppointmentCancelled(nil)
	}

	if err := uc.AppointmentRepository.MarkCancelled(ctx, appointment.ID); err != nil {
		return err
	}

	// Put the slot back so the identical tuple can be rebooked.
	if err := uc.DoctorRepository.ReleaseSlot(ctx, appointment.DoctorID, appointment.SlotDate, appointment.SlotTime); err != nil {
		uc.Log.Error("appointmentUsecase.cancel error releasing slot",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *appointmentUsecase) ListUserAppointments(ctx context.Context, userID string) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.buildAppointmentResponses(ctx, appointments), nil
}

func (uc *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return uc.buildAppointmentResponses(ctx, appointments), nil
}

func (uc *appointmentUsecase) ListAllAppointments(ctx context.Context) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.buildAppointmentResponses(ctx, appointments), nil
}

func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, doctorID string, request *requests.CompleteAppointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotExist(nil)
	}
	if appointment.DoctorID != doctorID {
		return exceptions.ErrNotResourceOwner(fmt.Errorf("appointment %s belongs to another doctor", request.AppointmentID))
	}
	if appointment.Cancelled {
		return exceptions.ErrAppointmentCancelled(nil)
	}
	if !appointment.Payment {
		return exceptions.ErrAppointmentNotPaid(nil)
	}

	return uc.AppointmentRepository.MarkCompleted(ctx, request.AppointmentID)
}

func (uc *appointmentUsecase) buildAppointmentResponses(ctx context.Context, appointments []models.Appointment) []responses.Appointment {
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		appointment := &appointments[i]
		response := responses.Appointment{
			ID:              appointment.ID,
			UserID:          appointment.UserID,
			DoctorID:        appointment.DoctorID,
			SlotDate:        appointment.SlotDate,
			SlotTime:        appointment.SlotTime,
			AppointmentType: appointment.AppointmentType,
			UserData:        appointment.UserData,
			DoctorData:      appointment.DoctorData,
			Amount:          appointment.Amount,
			Cancelled:       appointment.Cancelled,
			Payment:         appointment.Payment,
			IsCompleted:     appointment.IsCompleted,
			MeetLink:        appointment.MeetLink,
		}
		if appointment.InvoiceObject != "" {
			url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InvoiceBucket, appointment.InvoiceObject, uc.InvoiceUrlExpiry)
			if err != nil {
				uc.Log.Warn("appointmentUsecase error presigning invoice url",
					zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
					zap.Error(err),
				)
			} else {
				response.InvoiceURL = url
			}
		}
		result = append(result, response)
	}
	return result
}
