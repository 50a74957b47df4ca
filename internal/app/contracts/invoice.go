package contracts

import "time"

type InvoiceData struct {
	InvoiceNumber   string
	IssuedAt        time.Time
	PatientName     string
	PatientEmail    string
	DoctorName      string
	Speciality      string
	SlotDate        string
	SlotTime        string
	AppointmentType string
	Amount          int64
	Currency        string
	OrderID         string
	PaymentID       string
}

type InvoiceRenderer interface {
	Render(data *InvoiceData) ([]byte, error)
}
