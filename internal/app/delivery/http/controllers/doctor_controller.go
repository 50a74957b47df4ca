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

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

var (
	doctorControllerInstance *DoctorController
	onceDoctorController     sync.Once
)

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	onceDoctorController.Do(func() {
		doctorControllerInstance = &DoctorController{
			Log:           logger,
			DoctorUsecase: doctorUsecase,
		}
	})
	return doctorControllerInstance
}

func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.ListDoctors(ctx)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindAll DoctorUsecase.ListDoctors error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorsFetchedMessage, response)
}

func (ctrl *DoctorController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorID")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetDoctorByID(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindByID DoctorUsecase.GetDoctorByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorsFetchedMessage, response)
}

func (ctrl *DoctorController) FindAvailableSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.FindAvailableSlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorID")
	ctrl.Log.Info("DoctorController.FindAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetAvailableSlots(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindAvailableSlots DoctorUsecase.GetAvailableSlots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.FindAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SlotsFetchedMessage, response)
}

func (ctrl *DoctorController) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.CreateDoctor requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateDoctor)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doctorID, err := ctrl.DoctorUsecase.CreateDoctor(ctx, request)
	if err != nil {
		ctrl.Log.Error("DoctorController.CreateDoctor DoctorUsecase.CreateDoctor error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID))

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorAddedMessage, nil)
}

func (ctrl *DoctorController) ChangeAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController.ChangeAvailability requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	doctorID := chi.URLParam(r, "doctorID")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := ctrl.DoctorUsecase.ChangeAvailability(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.ChangeAvailability DoctorUsecase.ChangeAvailability error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.ChangeAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorAvailabilityMessage, nil)
}
