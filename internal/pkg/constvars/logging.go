package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingQueryKey         = "query"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingErrorTypeKey     = "error_type"
	LoggingUserIDKey        = "user_id"
	LoggingDoctorIDKey      = "doctor_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingOrderIDKey       = "order_id"
	LoggingPaymentIDKey     = "payment_id"
	LoggingSlotDateKey      = "slot_date"
	LoggingSlotTimeKey      = "slot_time"
	LoggingRedisKey         = "redis_key"
	LoggingQueueKey         = "queue"
	LoggingRetryCountKey    = "retry_count"
	LoggingLockValueKey     = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingBucketKey        = "bucket"
	LoggingObjectNameKey    = "object_name"
	LoggingEmailToKey       = "email_to"
	LoggingCronSpecKey      = "cron_spec"
)
