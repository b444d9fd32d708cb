package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
	MongoCollectionPatients     = "patients"
)

const (
	RoleTypePatient = "patient"
	RoleTypeDoctor  = "doctor"
)

const (
	// AppointmentDuration is the fixed length of every bookable timeslot.
	AppointmentDuration = 30 * time.Minute

	// BookingLockTTL bounds how long a (doctor, timeslot) pair stays locked
	// while a booking is in flight.
	BookingLockTTL = 15 * time.Second

	BookingLockKeyFormat = "booking:%s:%s"
	SessionKeyFormat     = "session:%s"
)

const (
	RemoteCleanupOK     = "ok"
	RemoteCleanupFailed = "failed"
)
