package responses

import "medilink-service/internal/app/models"

type Appointment struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	DoctorID        string                 `json:"docId"`
	SlotDate        string                 `json:"slotDate"`
	SlotTime        string                 `json:"slotTime"`
	AppointmentType string                 `json:"appointmentType"`
	UserData        models.UserSnapshot    `json:"userData"`
	DoctorData      models.DoctorSnapshot  `json:"docData"`
	Amount          int64                  `json:"amount"`
	Cancelled       bool                   `json:"cancelled"`
	Payment         bool                   `json:"payment"`
	IsCompleted     bool                   `json:"isCompleted"`
	MeetLink        string                 `json:"meetLink,omitempty"`
	InvoiceURL      string                 `json:"invoiceUrl,omitempty"`
}

type BookAppointment struct {
	AppointmentID string `json:"appointmentId"`
}
