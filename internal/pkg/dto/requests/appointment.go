package requests

import "time"

type BookAppointmentRequest struct {
	DoctorEmail string `json:"doctor_email" validate:"required,email"`
	Timeslot    string `json:"timeslot" validate:"required"`

	// Populated by the usecase from the session and the parsed timeslot,
	// never bound from the request body.
	PatientEmail string    `json:"-"`
	PatientName  string    `json:"-"`
	StartTime    time.Time `json:"-"`
}

type RescheduleAppointmentRequest struct {
	NewTimeslot string `json:"new_timeslot" validate:"required"`

	StartTime time.Time `json:"-"`
}
