package notifications

import (
	"context"
	"fmt"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker drains the appointment.paid queue and runs the post-payment fan-out:
// meet link for virtual consultations, PDF invoice into object storage, and
// the confirmation email. Failures retry the whole message; the payment state
// itself is never touched.
type Worker struct {
	queue                 *QueueService
	AppointmentRepository contracts.AppointmentRepository
	Calendar              contracts.CalendarService
	InvoiceRenderer       contracts.InvoiceRenderer
	Storage               contracts.Storage
	Mailer                contracts.MailerService
	InternalConfig        *config.InternalConfig
	InvoiceBucket         string
	Log                   *zap.Logger

	runCtx context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWorker(
	queue *QueueService,
	appointmentMongoRepository contracts.AppointmentRepository,
	calendarService contracts.CalendarService,
	invoiceRenderer contracts.InvoiceRenderer,
	storage contracts.Storage,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	invoiceBucket string,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		queue:                 queue,
		AppointmentRepository: appointmentMongoRepository,
		Calendar:              calendarService,
		InvoiceRenderer:       invoiceRenderer,
		Storage:               storage,
		Mailer:                mailerService,
		InternalConfig:        internalConfig,
		InvoiceBucket:         invoiceBucket,
		Log:                   logger,
		done:                  make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	deliveries, err := w.queue.Consume()
	if err != nil {
		return err
	}

	w.runCtx, w.cancel = context.WithCancel(ctx)
	go func() {
		defer close(w.done)
		for {
			select {
			case <-w.runCtx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				w.handleDelivery(w.runCtx, delivery)
			}
		}
	}()
	return nil
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.done
}

func (w *Worker) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var event contracts.AppointmentPaidEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		w.Log.Error("notifications.Worker dropping undecodable message",
			zap.String(constvars.LoggingQueueKey, constvars.QueueAppointmentPaid),
			zap.Error(err),
		)
		_ = delivery.Ack(false)
		return
	}

	retryCount := RetryCountOf(delivery)
	err := w.process(ctx, &event)
	if err == nil {
		_ = delivery.Ack(false)
		return
	}

	w.Log.Error("notifications.Worker fan-out attempt failed",
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.Int(constvars.LoggingRetryCountKey, retryCount),
		zap.Error(err),
	)

	if retryCount+1 >= w.InternalConfig.Worker.FanOutMaxRetries {
		if dlqErr := w.queue.PublishToDeadLetter(ctx, &event, retryCount+1); dlqErr != nil {
			w.Log.Error("notifications.Worker error parking message on DLQ",
				zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
				zap.Error(dlqErr),
			)
			_ = delivery.Nack(false, true)
			return
		}
	} else {
		if requeueErr := w.queue.Requeue(ctx, &event, retryCount+1); requeueErr != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}
	_ = delivery.Ack(false)
}

// process runs the three fan-out steps. Each step leaves a marker on the
// appointment (meet link, invoice object, confirmation flag), so a retry only
// repeats what is still missing.
func (w *Worker) process(ctx context.Context, event *contracts.AppointmentPaidEvent) error {
	appointment, err := w.AppointmentRepository.FindByID(ctx, event.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		w.Log.Warn("notifications.Worker event for unknown appointment",
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		)
		return nil
	}
	if !appointment.Payment {
		w.Log.Warn("notifications.Worker event for unpaid appointment, skipping",
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		)
		return nil
	}

	var firstErr error

	meetLink := appointment.MeetLink
	if appointment.IsVirtual() && meetLink == "" {
		meetLink, err = w.createMeetLink(ctx, appointment)
		if err != nil {
			firstErr = err
		}
	}

	invoicePDF, err := w.ensureInvoice(ctx, appointment, event)
	if err != nil && firstErr == nil {
		firstErr = err
	}

	// The email goes out only once everything it references is in place, and
	// the stored marker keeps redeliveries from sending it again. A failed
	// marker write means one extra email on the retry, never a lost one.
	if firstErr != nil {
		return firstErr
	}
	if appointment.ConfirmationSent {
		return nil
	}
	if err := w.sendConfirmation(ctx, appointment, meetLink, invoicePDF); err != nil {
		return err
	}
	return w.AppointmentRepository.MarkConfirmationSent(ctx, appointment.ID)
}

func (w *Worker) createMeetLink(ctx context.Context, appointment *models.Appointment) (string, error) {
	loc, err := time.LoadLocation(w.InternalConfig.App.Timezone)
	if err != nil {
		loc = time.Local
	}
	start, err := utils.CombineSlotDateTime(appointment.SlotDate, appointment.SlotTime, loc)
	if err != nil {
		return "", err
	}

	meetLink, err := w.Calendar.CreateMeetEvent(ctx, &contracts.MeetEventInput{
		Summary:     fmt.Sprintf("Consultation with Dr. %s", appointment.DoctorData.Name),
		Description: fmt.Sprintf("MediLink video consultation for %s", appointment.UserData.Name),
		Start:       start,
		End:         utils.EndOfSlot(start),
		Attendees:   []string{appointment.UserData.Email, appointment.DoctorData.Email},
	})
	if err != nil {
		return "", err
	}

	if err := w.AppointmentRepository.SetMeetLink(ctx, appointment.ID, meetLink); err != nil {
		return "", err
	}
	w.Log.Info("notifications.Worker meet link created",
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return meetLink, nil
}

// ensureInvoice renders the PDF, uploads it once, and always returns the
// bytes so the email attachment does not depend on a second download.
func (w *Worker) ensureInvoice(ctx context.Context, appointment *models.Appointment, event *contracts.AppointmentPaidEvent) ([]byte, error) {
	data := &contracts.InvoiceData{
		InvoiceNumber:   appointment.ID,
		IssuedAt:        time.UnixMilli(event.PaidAt),
		PatientName:     appointment.UserData.Name,
		PatientEmail:    appointment.UserData.Email,
		DoctorName:      appointment.DoctorData.Name,
		Speciality:      appointment.DoctorData.Speciality,
		SlotDate:        appointment.SlotDate,
		SlotTime:        appointment.SlotTime,
		AppointmentType: appointment.AppointmentType,
		Amount:          appointment.Amount,
		Currency:        w.InternalConfig.App.Currency,
		OrderID:         event.OrderID,
		PaymentID:       event.PaymentID,
	}

	pdf, err := w.InvoiceRenderer.Render(data)
	if err != nil {
		return nil, err
	}

	if appointment.InvoiceObject == "" {
		objectName := fmt.Sprintf(constvars.InvoiceObjectNameFormat, appointment.ID)
		if err := w.Storage.UploadObject(ctx, w.InvoiceBucket, objectName, pdf, constvars.MIMEApplicationPDF); err != nil {
			return pdf, err
		}
		if err := w.AppointmentRepository.SetInvoiceObject(ctx, appointment.ID, objectName); err != nil {
			return pdf, err
		}
		w.Log.Info("notifications.Worker invoice stored",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
		)
	}
	return pdf, nil
}

func (w *Worker) sendConfirmation(ctx context.Context, appointment *models.Appointment, meetLink string, invoicePDF []byte) error {
	return w.Mailer.SendAppointmentConfirmation(ctx, &contracts.AppointmentEmailInput{
		To:              appointment.UserData.Email,
		PatientName:     appointment.UserData.Name,
		DoctorName:      appointment.DoctorData.Name,
		Speciality:      appointment.DoctorData.Speciality,
		SlotDate:        appointment.SlotDate,
		SlotTime:        appointment.SlotTime,
		AppointmentType: appointment.AppointmentType,
		MeetLink:        meetLink,
		InvoicePDF:      invoicePDF,
		InvoiceName:     constvars.InvoiceFileName,
	})
}
