package contracts

import (
	"context"

	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (doctorID string, err error)
	ListDoctors(ctx context.Context) ([]responses.Doctor, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
	GetDoctorIDByUserID(ctx context.Context, userID string) (string, error)
	GetAvailableSlots(ctx context.Context, doctorID string) ([]responses.DaySlots, error)
	ChangeAvailability(ctx context.Context, doctorID string) error
}

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctorModel *models.Doctor) (doctorID string, err error)
	FindAll(ctx context.Context) ([]models.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	SetAvailability(ctx context.Context, doctorID string, available bool) error

	// ReserveSlot atomically appends slotTime to slots_booked[slotDate] on a
	// doctor that is available and does not already hold that time. It reports
	// whether the reservation won; false means the slot was taken or the
	// doctor became unavailable in between.
	ReserveSlot(ctx context.Context, doctorID, slotDate, slotTime string) (bool, error)
	// ReleaseSlot removes slotTime from slots_booked[slotDate]. Releasing a
	// slot that is not held is a no-op.
	ReleaseSlot(ctx context.Context, doctorID, slotDate, slotTime string) error
}
