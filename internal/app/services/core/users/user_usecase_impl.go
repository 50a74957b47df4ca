package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	GoogleVerifier contracts.GoogleTokenVerifier
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userMongoRepository contracts.UserRepository,
	googleVerifier contracts.GoogleTokenVerifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		userUsecaseInstance = &userUsecase{
			UserRepository: userMongoRepository,
			GoogleVerifier: googleVerifier,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return userUsecaseInstance
}

func (uc *userUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.AuthToken, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existing, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s taken", request.Email))
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	userID, err := uc.UserRepository.CreateUser(ctx, &models.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: hash,
		Phone:    request.Phone,
		Role:     constvars.RolePatient,
	})
	if err != nil {
		uc.Log.Error("userUsecase.Register error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := utils.GenerateJWT(userID, constvars.RolePatient, uc.InternalConfig.JWT.Secret, uc.tokenExpiry())
	if err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.Register user created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &responses.AuthToken{Token: token}, nil
}

func (uc *userUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.AuthToken, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidCredentials(nil)
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, uc.InternalConfig.JWT.Secret, uc.tokenExpiry())
	if err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.AuthToken{Token: token}, nil
}

// GoogleLogin exchanges a verified Google ID token for an application token.
// A first-time sign-in provisions a patient account; a password account with
// the same email gets linked to the Google identity instead.
func (uc *userUsecase) GoogleLogin(ctx context.Context, request *requests.GoogleLogin) (*responses.AuthToken, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.GoogleLogin called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	identity, err := uc.GoogleVerifier.VerifyIDToken(ctx, request.IDToken)
	if err != nil {
		return nil, err
	}

	user, err := uc.UserRepository.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	switch {
	case user == nil:
		name := identity.Name
		if name == "" {
			name = identity.Email
		}
		userID, err := uc.UserRepository.CreateUser(ctx, &models.User{
			Name:         name,
			Email:        identity.Email,
			Role:         constvars.RolePatient,
			GoogleID:     identity.Subject,
			IsGoogleUser: true,
		})
		if err != nil {
			uc.Log.Error("userUsecase.GoogleLogin error creating user",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		user = &models.User{ID: userID, Role: constvars.RolePatient}
	case !user.IsGoogleUser:
		user.GoogleID = identity.Subject
		user.IsGoogleUser = true
		if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, uc.InternalConfig.JWT.Secret, uc.tokenExpiry())
	if err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.GoogleLogin succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.AuthToken{Token: token}, nil
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}
	return buildUserProfile(user), nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.UserProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	user.Name = request.Name
	user.Phone = request.Phone
	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return buildUserProfile(user), nil
}

func (uc *userUsecase) tokenExpiry() time.Duration {
	return time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
}

func buildUserProfile(user *models.User) *responses.UserProfile {
	return &responses.UserProfile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}
}
