package constvars

// Client-facing messages. These are the only strings that ever leave the API
// for a failed request.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"

	ErrClientSlotUnavailable     = "this timeslot is no longer available"
	ErrClientDuplicateBooking    = "you already have a booking for this timeslot"
	ErrClientCalendarAuthNeeded  = "calendar access has expired, please grant access again"
	ErrClientCalendarUnavailable = "the calendar service could not complete the request"
	ErrClientAppointmentNotFound = "appointment not found"
	ErrClientMissingContactInfo  = "no contact email on record for this appointment"
	ErrClientTimeslotInThePast   = "the requested timeslot must be in the future"
	ErrClientDoctorNotFound      = "doctor not found"
	ErrClientDoctorAlreadyExist  = "a doctor with this email already exists"
)

// Dev messages carried inside CustomError, never serialized in production.
const (
	ErrDevInvalidInput        = "invalid input"
	ErrDevValidationFailed    = "request validation failed"
	ErrDevCannotParseJSON     = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime     = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON   = "cannot convert struct or other data types to JSON"
	ErrDevCreateHTTPRequest   = "failed to create HTTP request"
	ErrDevSendHTTPRequest     = "failed to send HTTP request"
	ErrDevDecodeResponse      = "failed to decode %s response body"
	ErrDevMissingRequestID    = "request id not found in request context"
	ErrDevMissingSessionData  = "session data not found in request context"
	ErrDevServerDeadline      = "operation exceeded its deadline"
	ErrDevAuthTokenMissing    = "authorization token missing from request"
	ErrDevAuthTokenInvalid    = "authorization token invalid or expired"
	ErrDevAuthInvalidSession  = "session not found or expired"
	ErrDevRoleTypeDoesntMatch = "request done by user with a different role type"

	ErrDevSlotUnavailable      = "timeslot absent from doctor's available set"
	ErrDevSlotLockNotAcquired  = "another booking for this timeslot is in flight"
	ErrDevDuplicateBooking     = "patient already holds an appointment for this timeslot"
	ErrDevCalendarTokenMissing = "session has no calendar-scoped token"
	ErrDevCalendarTokenExpired = "calendar token expired and refresh failed"
	ErrDevCalendarProvider     = "calendar provider returned status %d"
	ErrDevAppointmentNotFound  = "appointment does not exist"
	ErrDevActorNotParticipant  = "actor is neither the booking patient nor the assigned doctor"
	ErrDevMissingContactInfo   = "appointment has no patient email to notify"
	ErrDevTimeslotNotFuture    = "timeslot is now or in the past"
	ErrDevDoctorNotFound       = "doctor does not exist"
	ErrDevDoctorAlreadyExist   = "doctor document with this email already present"

	ErrDevDBFailedToFindDocument    = "failed to find document"
	ErrDevDBFailedToInsertDocument  = "failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "failed to update document"
	ErrDevDBFailedToDeleteDocument  = "failed to delete document"
	ErrDevDBFailedToIterateDocument = "failed to iterate documents"

	ErrDevRedisGetData       = "failed to get data from redis"
	ErrDevRedisSetData       = "failed to set data to redis"
	ErrDevRedisDeleteData    = "failed to delete data from redis"
	ErrDevRedisSetNX         = "failed to acquire key via redis SETNX"
	ErrDevRedisUnlock        = "failed to release redis lock"
	ErrDevIdentityProvider   = "identity provider returned status %d"
	ErrDevQueuePublish       = "failed to publish message to queue %s"
	ErrDevSMTPSendEmail      = "failed to send email via SMTP client hostname %s"
	ErrDevTemplateNotFound   = "no notification template registered for id %s"
	ErrDevTemplateRender     = "failed to render notification template %s"
	ErrDevAuthGenerateToken  = "failed to generate session token"
	ErrDevAuthExchangeFailed = "identity provider rejected the authorization code"
)
