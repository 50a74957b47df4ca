package doctors

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/app/services/core/slots"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const doctorListCacheTTL = 5 * time.Minute

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	UserRepository   contracts.UserRepository
	RedisRepository  contracts.RedisRepository
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorMongoRepository contracts.DoctorRepository,
	userMongoRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = &doctorUsecase{
			DoctorRepository: doctorMongoRepository,
			UserRepository:   userMongoRepository,
			RedisRepository:  redisRepository,
			InternalConfig:   internalConfig,
			Log:              logger,
		}
	})
	return doctorUsecaseInstance
}

// CreateDoctor provisions both the login account and the doctor profile.
func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existing, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", exceptions.ErrEmailAlreadyExist(fmt.Errorf("doctor email %s taken", request.Email))
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", exceptions.ErrHashPassword(err)
	}

	userID, err := uc.UserRepository.CreateUser(ctx, &models.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: hash,
		Role:     constvars.RoleDoctor,
	})
	if err != nil {
		return "", err
	}

	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, &models.Doctor{
		UserID:     userID,
		Name:       request.Name,
		Email:      request.Email,
		Image:      request.Image,
		Speciality: request.Speciality,
		Degree:     request.Degree,
		Experience: request.Experience,
		About:      request.About,
		Fees:       request.Fees,
		Address: models.DoctorAddress{
			Line1: request.Address.Line1,
			Line2: request.Address.Line2,
		},
		Available:   true,
		SlotsBooked: map[string][]string{},
	})
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error creating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	uc.invalidateListCache(ctx)
	uc.Log.Info("doctorUsecase.CreateDoctor doctor created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return doctorID, nil
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyDoctorList)
	if err == nil && cached != "" {
		var doctors []responses.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	}

	doctorModels, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	doctors := make([]responses.Doctor, 0, len(doctorModels))
	for i := range doctorModels {
		doctors = append(doctors, buildDoctorResponse(&doctorModels[i]))
	}

	if err := uc.RedisRepository.Set(ctx, constvars.RedisKeyDoctorList, doctors, doctorListCacheTTL); err != nil {
		uc.Log.Warn("doctorUsecase.ListDoctors error caching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return doctors, nil
}

func (uc *doctorUsecase) GetDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}
	response := buildDoctorResponse(doctor)
	return &response, nil
}

// GetDoctorIDByUserID maps an authenticated doctor account to its profile.
func (uc *doctorUsecase) GetDoctorIDByUserID(ctx context.Context, userID string) (string, error) {
	doctor, err := uc.DoctorRepository.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if doctor == nil {
		return "", exceptions.ErrDoctorNotExist(nil)
	}
	return doctor.ID, nil
}

func (uc *doctorUsecase) GetAvailableSlots(ctx context.Context, doctorID string) ([]responses.DaySlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotExist(nil)
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorNotAvailable(nil)
	}

	loc, err := time.LoadLocation(uc.InternalConfig.App.Timezone)
	if err != nil {
		loc = time.Local
	}
	return slots.Generate(time.Now().In(loc), doctor.SlotsBooked), nil
}

func (uc *doctorUsecase) ChangeAvailability(ctx context.Context, doctorID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrDoctorNotExist(nil)
	}

	if err := uc.DoctorRepository.SetAvailability(ctx, doctorID, !doctor.Available); err != nil {
		return err
	}

	uc.invalidateListCache(ctx)
	uc.Log.Info("doctorUsecase.ChangeAvailability toggled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("available", !doctor.Available),
	)
	return nil
}

func (uc *doctorUsecase) invalidateListCache(ctx context.Context) {
	if err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyDoctorList); err != nil {
		uc.Log.Warn("doctorUsecase error invalidating doctor list cache",
			zap.Error(err),
		)
	}
}

func buildDoctorResponse(doctor *models.Doctor) responses.Doctor {
	return responses.Doctor{
		ID:         doctor.ID,
		Name:       doctor.Name,
		Image:      doctor.Image,
		Speciality: doctor.Speciality,
		Degree:     doctor.Degree,
		Experience: doctor.Experience,
		About:      doctor.About,
		Fees:       doctor.Fees,
		Address: responses.DoctorAddress{
			Line1: doctor.Address.Line1,
			Line2: doctor.Address.Line2,
		},
		Available: doctor.Available,
	}
}
