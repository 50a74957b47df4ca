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

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	DoctorUsecase      contracts.DoctorUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, doctorUsecase contracts.DoctorUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		appointmentControllerInstance = &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
			DoctorUsecase:      doctorUsecase,
		}
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.BookAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.BookAppointment userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.BookAppointment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment request decoded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime))

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.BookAppointment(ctx, userID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment AppointmentUsecase.BookAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.AppointmentID))

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentBookedMessage, response)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CancelAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CancelAppointment userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.CancelAppointment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointment failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = ctrl.AppointmentUsecase.CancelAppointment(ctx, userID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointment AppointmentUsecase.CancelAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCancelledMessage, nil)
}

func (ctrl *AppointmentController) FindUserAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindUserAppointments requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindUserAppointments userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListUserAppointments(ctx, userID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindUserAppointments AppointmentUsecase.ListUserAppointments error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindUserAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsFetchedMessage, response)
}

func (ctrl *AppointmentController) FindDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindDoctorAppointments requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindDoctorAppointments userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doctorID, err := ctrl.DoctorUsecase.GetDoctorIDByUserID(ctx, userID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindDoctorAppointments DoctorUsecase.GetDoctorIDByUserID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.AppointmentUsecase.ListDoctorAppointments(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindDoctorAppointments AppointmentUsecase.ListDoctorAppointments error",
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

	ctrl.Log.Info("AppointmentController.FindDoctorAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsFetchedMessage, response)
}

func (ctrl *AppointmentController) FindAllAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindAllAppointments requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListAllAppointments(ctx)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindAllAppointments AppointmentUsecase.ListAllAppointments error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAllAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsFetchedMessage, response)
}

func (ctrl *AppointmentController) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CompleteAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CompleteAppointment userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.CompleteAppointment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CompleteAppointment failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CompleteAppointment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doctorID, err := ctrl.DoctorUsecase.GetDoctorIDByUserID(ctx, userID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CompleteAppointment DoctorUsecase.GetDoctorIDByUserID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = ctrl.AppointmentUsecase.CompleteAppointment(ctx, doctorID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CompleteAppointment AppointmentUsecase.CompleteAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CompleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCompletedMessage, nil)
}

func (ctrl *AppointmentController) CancelAppointmentByAdmin(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.CancelAppointmentByAdmin requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CancelAppointment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointmentByAdmin failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointmentByAdmin validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = ctrl.AppointmentUsecase.CancelAppointmentByAdmin(ctx, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointmentByAdmin AppointmentUsecase.CancelAppointmentByAdmin error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CancelAppointmentByAdmin succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentCancelledMessage, nil)
}
