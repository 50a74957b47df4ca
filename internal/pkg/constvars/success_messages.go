package constvars

const (
	ResponseSuccess = "Success"

	UserRegisteredMessage       = "Account created successfully"
	UserLoggedInMessage         = "Logged in successfully"
	UserProfileFetchedMessage   = "Profile fetched successfully"
	UserProfileUpdatedMessage   = "Profile Updated"
	DoctorsFetchedMessage       = "Doctors fetched successfully"
	DoctorAddedMessage          = "Doctor added successfully"
	DoctorAvailabilityMessage   = "Availability updated"
	SlotsFetchedMessage         = "Time slots fetched successfully"
	AppointmentBookedMessage    = "Appointment Booked"
	AppointmentCancelledMessage = "Appointment Cancelled"
	AppointmentsFetchedMessage  = "Appointments fetched successfully"
	AppointmentCompletedMessage = "Appointment Completed"
	PaymentOrderCreatedMessage  = "Payment order created"
	PaymentVerifiedMessage      = "Payment successful"
)
