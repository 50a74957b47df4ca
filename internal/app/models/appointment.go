package models

import "medilink-service/internal/pkg/constvars"

// Appointment snapshots the patient and doctor documents at booking time so the
// record stays readable even if either profile changes later.
type Appointment struct {
	ID               string         `bson:"_id,omitempty"`
	UserID           string         `bson:"userId"`
	DoctorID         string         `bson:"docId"`
	SlotDate         string         `bson:"slotDate"`
	SlotTime         string         `bson:"slotTime"`
	AppointmentType  string         `bson:"appointmentType"`
	UserData         UserSnapshot   `bson:"userData"`
	DoctorData       DoctorSnapshot `bson:"docData"`
	Amount           int64          `bson:"amount"`
	Date             int64          `bson:"date"`
	Cancelled        bool           `bson:"cancelled"`
	Payment          bool           `bson:"payment"`
	IsCompleted      bool           `bson:"isCompleted"`
	PaymentDetail    *PaymentDetail `bson:"paymentDetail,omitempty"`
	MeetLink         string         `bson:"meetLink,omitempty"`
	InvoiceObject    string         `bson:"invoiceObject,omitempty"`
	ConfirmationSent bool           `bson:"confirmationSent,omitempty"`
	TimeModel        `bson:",inline"`
}

type UserSnapshot struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type DoctorSnapshot struct {
	Name       string        `bson:"name" json:"name"`
	Email      string        `bson:"email" json:"email"`
	Speciality string        `bson:"speciality" json:"speciality"`
	Degree     string        `bson:"degree" json:"degree"`
	Fees       int64         `bson:"fees" json:"fees"`
	Address    DoctorAddress `bson:"address" json:"address"`
}

type PaymentDetail struct {
	OrderID   string `bson:"orderId"`
	PaymentID string `bson:"paymentId"`
	PaidAt    int64  `bson:"paidAt"`
}

func (a *Appointment) IsVirtual() bool {
	return a.AppointmentType == constvars.AppointmentTypeVirtual
}
