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

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	oncePaymentController.Do(func() {
		paymentControllerInstance = &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
	})
	return paymentControllerInstance
}

func (ctrl *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController.CreateOrder requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController.CreateOrder userID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.CreatePaymentOrder)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreateOrder(ctx, userID, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateOrder PaymentUsecase.CreateOrder error",
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

	ctrl.Log.Info("PaymentController.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingOrderIDKey, response.OrderID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentOrderCreatedMessage, response)
}

func (ctrl *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("PaymentController.VerifyPayment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.VerifyPayment)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		ctrl.Log.Error("PaymentController.VerifyPayment failed to decode JSON request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		ctrl.Log.Error("PaymentController.VerifyPayment validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = ctrl.PaymentUsecase.VerifyPayment(ctx, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.VerifyPayment PaymentUsecase.VerifyPayment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.VerifyPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
		zap.String(constvars.LoggingPaymentIDKey, request.RazorpayPaymentID))

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentVerifiedMessage, nil)
}
