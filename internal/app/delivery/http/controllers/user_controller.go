package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
}

var (
	userControllerInstance *UserController
	onceUserController     sync.Once
)

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase) *UserController {
	onceUserController.Do(func() {
		userControllerInstance = &UserController{
			Log:         logger,
			UserUsecase: userUsecase,
		}
	})
	return userControllerInstance
}

func (ctrl *UserController) Register(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.Register requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.RegisterUser)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("UserController.Register failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("UserController.Register validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.UserUsecase.Register(ctx, request)
	if err != nil {
		ctrl.Log.Error("UserController.Register UserUsecase.Register error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("UserController.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UserRegisteredMessage, response)
}

func (ctrl *UserController) Login(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.Login requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.LoginUser)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("UserController.Login failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("UserController.Login validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.UserUsecase.Login(ctx, request)
	if err != nil {
		ctrl.Log.Error("UserController.Login UserUsecase.Login error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("UserController.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UserLoggedInMessage, response)
}

func (ctrl *UserController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.GoogleLogin requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.GoogleLogin)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("UserController.GoogleLogin failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("UserController.GoogleLogin validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.UserUsecase.GoogleLogin(ctx, request)
	if err != nil {
		ctrl.Log.Error("UserController.GoogleLogin UserUsecase.GoogleLogin error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("UserController.GoogleLogin succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UserLoggedInMessage, response)
}

func (ctrl *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.GetProfile requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.GetProfile userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctrl.Log.Info("UserController.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.UserUsecase.GetProfile(ctx, userID)
	if err != nil {
		ctrl.Log.Error("UserController.GetProfile UserUsecase.GetProfile error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UserProfileFetchedMessage, response)
}

func (ctrl *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.UpdateProfile requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("UserController.UpdateProfile userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.UpdateProfile)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("UserController.UpdateProfile failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("UserController.UpdateProfile validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.UserUsecase.UpdateProfile(ctx, userID, request)
	if err != nil {
		ctrl.Log.Error("UserController.UpdateProfile UserUsecase.UpdateProfile error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("UserController.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UserProfileUpdatedMessage, response)
}
