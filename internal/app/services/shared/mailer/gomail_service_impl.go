package mailer

import (
	"context"
	"fmt"
	"io"
	"sync"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"
	"medilink-service/internal/pkg/utils"

	"github.com/go-gomail/gomail"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	mailerServiceInstance contracts.MailerService
	onceMailerService     sync.Once
)

type gomailService struct {
	dialer  *gomail.Dialer
	sender  string
	host    string
	limiter *rate.Limiter
	Log     *zap.Logger
}

// NewGomailService wraps the SMTP dialer with a token bucket so a burst of
// paid appointments cannot trip the provider's sending limits.
func NewGomailService(dialer *gomail.Dialer, driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.MailerService {
	onceMailerService.Do(func() {
		sendsPerMinute := internalConfig.Worker.MailerSendsPerMinute
		if sendsPerMinute <= 0 {
			sendsPerMinute = 30
		}
		instance := &gomailService{
			dialer:  dialer,
			sender:  driverConfig.SMTP.EmailSender,
			host:    driverConfig.SMTP.Host,
			limiter: rate.NewLimiter(rate.Limit(float64(sendsPerMinute)/60.0), 1),
			Log:     logger,
		}
		mailerServiceInstance = instance
	})
	return mailerServiceInstance
}

func (s *gomailService) SendAppointmentConfirmation(ctx context.Context, input *contracts.AppointmentEmailInput) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return exceptions.ErrSMTPSendEmail(err, s.host)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.sender, constvars.EmailSenderName)
	m.SetHeader("To", input.To)
	m.SetHeader("Subject", constvars.EmailSubjectPaymentConfirmation)
	m.SetBody("text/html", buildConfirmationBody(input))

	if len(input.InvoicePDF) > 0 {
		pdf := input.InvoicePDF
		m.Attach(input.InvoiceName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.Log.Error("gomailService.SendAppointmentConfirmation error sending email",
			zap.String(constvars.LoggingEmailToKey, input.To),
			zap.Error(err),
		)
		return exceptions.ErrSMTPSendEmail(err, s.host)
	}

	s.Log.Info("gomailService.SendAppointmentConfirmation sent email",
		zap.String(constvars.LoggingEmailToKey, input.To),
	)
	return nil
}

func buildConfirmationBody(input *contracts.AppointmentEmailInput) string {
	body := fmt.Sprintf(
		"<p>Dear %s,</p>"+
			"<p>Your payment has been received and your appointment is confirmed.</p>"+
			"<ul>"+
			"<li>Doctor: %s (%s)</li>"+
			"<li>Date: %s</li>"+
			"<li>Time: %s</li>"+
			"<li>Type: %s</li>"+
			"</ul>",
		input.PatientName,
		input.DoctorName,
		input.Speciality,
		utils.DisplaySlotDate(input.SlotDate),
		input.SlotTime,
		input.AppointmentType,
	)
	if input.MeetLink != "" {
		body += fmt.Sprintf("<p>Join your video consultation here: <a href=%q>%s</a></p>", input.MeetLink, input.MeetLink)
	}
	body += "<p>Your invoice is attached.</p><p>MediLink Healthcare</p>"
	return body
}
