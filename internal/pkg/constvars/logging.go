package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingDoctorEmailKey     = "doctor_email"
	LoggingPatientEmailKey    = "patient_email"
	LoggingTimeslotKey        = "timeslot"
	LoggingNewTimeslotKey     = "new_timeslot"
	LoggingAppointmentIDKey   = "appointment_id"
	LoggingCalendarEventIDKey = "calendar_event_id"
	LoggingTemplateIDKey      = "template_id"
	LoggingRecipientKey       = "recipient"
	LoggingActorKey           = "actor"
	LoggingSessionIDKey       = "session_id"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "stored_value"
	LoggingLockExpectedValueKey  = "expected_value"
)
