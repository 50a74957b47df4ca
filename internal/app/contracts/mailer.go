package contracts

import "context"

type AppointmentEmailInput struct {
	To              string
	PatientName     string
	DoctorName      string
	Speciality      string
	SlotDate        string
	SlotTime        string
	AppointmentType string
	MeetLink        string
	InvoicePDF      []byte
	InvoiceName     string
}

type MailerService interface {
	SendAppointmentConfirmation(ctx context.Context, input *AppointmentEmailInput) error
}
