package constvars

// Notification template ids. The mailer queue payload carries one of these
// plus a flat parameter map; the worker owns the subject/body for each id.
const (
	TemplateBookingConfirmed      = "booking-confirmed"
	TemplateAppointmentCancelled  = "appointment-cancelled"
	TemplateAppointmentRescheduled = "appointment-rescheduled"
)

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
)

// Parameter map keys shared by every template.
const (
	MailParamPatientName = "patient_name"
	MailParamDoctorName  = "doctor_name"
	MailParamTimeslot    = "timeslot"
	MailParamMeetingLink = "meeting_link"
	MailParamActor       = "actor"
)
