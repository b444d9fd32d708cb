package appointments

import (
	"context"
	"fmt"
	"sync"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/responses"
	"theramind-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	SessionService        contracts.SessionService
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentMongoRepository contracts.AppointmentRepository,
	sessionService contracts.SessionService,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentMongoRepository,
			SessionService:        sessionService,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

// FindAll lists the caller's appointments: a patient sees bookings made under
// their email, a doctor sees the bookings assigned to them.
func (uc *appointmentUsecase) FindAll(ctx context.Context, sessionData string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	if session.IsDoctor() {
		appointments, err = uc.AppointmentRepository.FindByDoctorEmail(ctx, session.Email)
	} else {
		appointments, err = uc.AppointmentRepository.FindByPatientEmail(ctx, session.Email)
	}
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAll error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Appointment, len(appointments))
	for i, appointment := range appointments {
		response[i] = BuildAppointmentResponse(&appointment)
	}
	return response, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, sessionData, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("no appointment with id %s", appointmentID))
	}
	if !appointment.IsParticipant(session.Email) {
		return nil, exceptions.ErrActorNotParticipant(fmt.Errorf("%s is not a participant of appointment %s", session.Email, appointmentID))
	}

	response := BuildAppointmentResponse(appointment)
	return &response, nil
}

// BuildAppointmentResponse is shared with the booking and lifecycle
// coordinators so every surface returns the same shape.
func BuildAppointmentResponse(appointment *models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:              appointment.ID,
		DoctorEmail:     appointment.DoctorEmail,
		DoctorName:      appointment.DoctorName,
		PatientEmail:    appointment.PatientEmail,
		PatientName:     appointment.PatientName,
		Timeslot:        appointment.Timeslot,
		MeetingLink:     appointment.MeetingLink,
		CalendarEventID: appointment.CalendarEventID,
		CreatedAt:       appointment.CreatedAt,
	}
}
