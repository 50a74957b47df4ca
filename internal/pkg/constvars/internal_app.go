package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_USER_ID_KEY              ContextKey = "user_id"
	CONTEXT_USER_ROLE_KEY            ContextKey = "user_role"
)

const (
	MongoCollectionUsers        = "users"
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

const (
	AppointmentTypeVirtual  = "virtual"
	AppointmentTypeInPerson = "in-person"
)

// Clinic working hours and slot cadence. Day 0 of the availability
// window applies a one hour lead-time buffer on top of these.
const (
	ClinicOpeningHour     = 10
	ClinicClosingHour     = 21
	SlotStepInMinutes     = 30
	SlotWindowDays        = 7
	SlotDurationInMinutes = 30
)

const (
	SlotDateLayout = "02_01_2006"
	SlotTimeLayout = "15:04"
)

const (
	RazorpayOrderStatusPaid       = "paid"
	RazorpayPaymentStatusCaptured = "captured"
)

const (
	RedisKeyDoctorList          = "medilink:doctors:list"
	RedisKeyReconcileLeaderLock = "medilink:locks:payment-reconciler"
)

const (
	InvoiceObjectNameFormat = "invoice-%s.pdf"
	InvoiceFileName         = "invoice.pdf"
)
