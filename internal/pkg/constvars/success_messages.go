package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	// Appointment messages
	CreateAppointmentSuccessMessage     = "appointment booked successfully"
	GetAppointmentSuccessMessage        = "get appointments successfully"
	CancelAppointmentSuccessMessage     = "appointment cancelled successfully"
	RescheduleAppointmentSuccessMessage = "appointment rescheduled successfully"

	// Doctor messages
	GetDoctorSuccessMessage          = "get doctors successfully"
	UpdateTimeslotsSuccessMessage    = "availability updated successfully"
	CreateDoctorSuccessMessage       = "doctor registered successfully"

	// Auth messages
	LoginSuccess           = "successfully login"
	LogoutSuccess          = "successfully logout"
	CalendarConsentSuccess = "calendar access granted"
)
