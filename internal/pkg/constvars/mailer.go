package constvars

const (
	EmailSubjectPaymentConfirmation = "Payment Confirmation - MediLink Healthcare"
	EmailSubjectMeetLinkFormat      = "Your Video Consultation Link - Appointment with Dr. %s"
	EmailSenderName                 = "MediLink Healthcare"
)

// Queue names used by the post-payment fan-out.
const (
	QueueAppointmentPaid           = "appointment.paid"
	QueueAppointmentPaidDeadLetter = "appointment.paid.dlq"
)

const (
	HeaderRetryCount = "x-retry-count"
)
