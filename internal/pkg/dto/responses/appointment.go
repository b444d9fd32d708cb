package responses

import "time"

type Appointment struct {
	ID              string    `json:"id"`
	DoctorEmail     string    `json:"doctor_email"`
	DoctorName      string    `json:"doctor_name"`
	PatientEmail    string    `json:"patient_email"`
	PatientName     string    `json:"patient_name"`
	Timeslot        time.Time `json:"timeslot"`
	MeetingLink     string    `json:"meeting_link"`
	CalendarEventID string    `json:"calendar_event_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookAppointment struct {
	Appointment
	NotificationQueued bool `json:"notification_queued"`
}

// CancelAppointment reports the two-outcome cancel: the local booking is gone,
// the remote cleanup may have failed and is surfaced instead of swallowed.
type CancelAppointment struct {
	AppointmentID      string    `json:"appointment_id"`
	LocalCancelled     bool      `json:"local_cancelled"`
	RemoteCleanup      string    `json:"remote_cleanup"`
	RestoredTimeslot   time.Time `json:"restored_timeslot"`
	NotificationQueued bool      `json:"notification_queued"`
}

type RescheduleAppointment struct {
	Appointment
	PreviousTimeslot   time.Time `json:"previous_timeslot"`
	NotificationQueued bool      `json:"notification_queued"`
}
