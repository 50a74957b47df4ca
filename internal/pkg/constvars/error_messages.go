package constvars

// Client facing messages. Kept stable; the frontend matches on some of them.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "Your session is invalid or has expired, please log in again"
	ErrClientInvalidCredentials            = "Invalid email or password"
	ErrClientEmailAlreadyExists            = "This email is already registered. Please try another email"
	ErrClientUserNotFound                  = "User does not exist"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientDoctorNotAvailable            = "Doctor Not Available"
	ErrClientSlotNotAvailable              = "Slot Not Available"
	ErrClientInvalidAppointmentType        = "Invalid appointment type"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientAppointmentCancelled          = "Appointment Cancelled or not found"
	ErrClientAppointmentAlreadyPaid        = "Appointment is already paid"
	ErrClientAppointmentNotPaid            = "Appointment has not been paid yet"
	ErrClientInvalidPaymentSignature       = "Invalid payment signature"
	ErrClientPaymentFailed                 = "Payment failed"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again later"
)

// Developer messages, logged but never returned to clients.
const (
	ErrDevValidationFailed          = "request payload validation failed"
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON         = "failed to marshal value to JSON"
	ErrDevCannotParseDate           = "failed to parse slot date"
	ErrDevCannotParseTime           = "failed to parse slot time"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevAuthTokenMissing          = "authorization token missing from request"
	ErrDevAuthTokenInvalidOrExpired = "authorization token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate JWT token"
	ErrDevMissingRequestID          = "request id missing from context"
	ErrDevServerDeadlineExceeded    = "context deadline exceeded while processing request"
	ErrDevServerProcess             = "unexpected server error"

	ErrDevDBFailedToFindDocument     = "mongodb failed to find document"
	ErrDevDBFailedToInsertDocument   = "mongodb failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "mongodb failed to update document"
	ErrDevDBFailedToIterateDocuments = "mongodb failed to iterate documents"
	ErrDevDBStringNotObjectID        = "string is not a valid mongodb object id"

	ErrDevRedisSetData       = "redis failed to set data"
	ErrDevRedisGetData       = "redis failed to get data"
	ErrDevRedisDeleteData    = "redis failed to delete data"
	ErrDevRedisSetNX         = "redis failed to execute SETNX"
	ErrDevRabbitMQPublish    = "rabbitmq failed to publish message to queue %s"
	ErrDevRabbitMQConsume    = "rabbitmq failed to register consumer on queue %s"
	ErrDevMinioCreateObject  = "minio failed to store object in bucket %s"
	ErrDevMinioPresignObject = "minio failed to generate presigned URL in bucket %s"

	ErrDevGatewayCreateOrder = "payment gateway failed to create order"
	ErrDevGatewayFetchOrder  = "payment gateway failed to fetch order %s"
	ErrDevCalendarInsert     = "calendar API failed to insert event"
	ErrDevSMTPSendEmail      = "smtp failed to send email via %s"
	ErrDevInvoiceRender      = "failed to render invoice PDF"
)
