package models

import "time"

// Appointment binds one doctor, one patient, one timeslot and one remote
// calendar event. At most one appointment may hold a given (doctorEmail,
// timeslot) pair; the doctor repository enforces that by consuming the slot
// atomically at booking time.
type Appointment struct {
	ID              string    `bson:"_id"`
	DoctorEmail     string    `bson:"doctorEmail"`
	DoctorName      string    `bson:"doctorName"`
	PatientEmail    string    `bson:"patientEmail"`
	PatientName     string    `bson:"patientName"`
	Timeslot        time.Time `bson:"timeslot"`
	MeetingLink     string    `bson:"meetingLink"`
	CalendarEventID string    `bson:"calendarEventId"`
	CreatedAt       time.Time `bson:"createdAt"`
}

// IsParticipant reports whether email belongs to the booking patient or the
// assigned doctor. Anyone else may not cancel or reschedule.
func (a *Appointment) IsParticipant(email string) bool {
	return email != "" && (email == a.PatientEmail || email == a.DoctorEmail)
}
