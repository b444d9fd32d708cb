package contracts

import (
	"context"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	FindAll(ctx context.Context, sessionData string) ([]responses.Appointment, error)
	FindByID(ctx context.Context, sessionData, appointmentID string) (*responses.Appointment, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatientEmail(ctx context.Context, patientEmail string) ([]models.Appointment, error)
	FindByDoctorEmail(ctx context.Context, doctorEmail string) ([]models.Appointment, error)
	FindByPatientAndTimeslot(ctx context.Context, patientEmail string, timeslot time.Time) (*models.Appointment, error)
	UpdateTimeslot(ctx context.Context, appointmentID string, timeslot time.Time) error
	DeleteByID(ctx context.Context, appointmentID string) (bool, error)
}
