package booking

import (
	"context"
	"fmt"
	"sync"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/app/services/core/appointments"
	"theramind-service/internal/pkg/calendar_dto"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/dto/responses"
	"theramind-service/internal/pkg/exceptions"
	"theramind-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type bookingUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	SessionService        contracts.SessionService
	LockerService         contracts.LockerService
	CalendarClient        contracts.CalendarClient
	CalendarTokenSource   contracts.CalendarTokenSource
	NotificationService   contracts.NotificationService
	Log                   *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	doctorMongoRepository contracts.DoctorRepository,
	appointmentMongoRepository contracts.AppointmentRepository,
	sessionService contracts.SessionService,
	lockerService contracts.LockerService,
	calendarClient contracts.CalendarClient,
	calendarTokenSource contracts.CalendarTokenSource,
	notificationService contracts.NotificationService,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			DoctorRepository:      doctorMongoRepository,
			AppointmentRepository: appointmentMongoRepository,
			SessionService:        sessionService,
			LockerService:         lockerService,
			CalendarClient:        calendarClient,
			CalendarTokenSource:   calendarTokenSource,
			NotificationService:   notificationService,
			Log:                   logger,
		}
	})
	return bookingUsecaseInstance
}

// Book runs the whole booking transition: consume the timeslot, create the
// remote calendar event, persist the appointment, queue the confirmation.
// Every step after the slot is consumed compensates by restoring it on
// failure, so an aborted booking never leaks availability.
func (uc *bookingUsecase) Book(ctx context.Context, sessionData string, request *requests.BookAppointmentRequest) (*responses.BookAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorEmailKey, request.DoctorEmail),
		zap.String(constvars.LoggingTimeslotKey, request.Timeslot),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if session.IsNotPatient() {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot book appointments", session.Role))
	}
	if !session.HasVerifiedEmail() {
		return nil, exceptions.ErrMissingContactInfo(fmt.Errorf("session %s has no verified email", session.SessionID))
	}
	request.PatientEmail = session.Email
	request.PatientName = session.Name

	slot, err := utils.ParseTimeslot(request.Timeslot)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	slot = slot.UTC().Truncate(time.Minute)
	if !utils.IsFutureTimeslot(slot, time.Now().UTC()) {
		return nil, exceptions.ErrTimeslotNotFuture(fmt.Errorf("timeslot %s is not in the future", request.Timeslot))
	}
	request.StartTime = slot

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, request.DoctorEmail)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("no doctor with email %s", request.DoctorEmail))
	}

	existing, err := uc.AppointmentRepository.FindByPatientAndTimeslot(ctx, session.Email, slot)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrDuplicateBooking(fmt.Errorf("patient %s already booked timeslot %s", session.Email, request.Timeslot))
	}

	lockKey := fmt.Sprintf(constvars.BookingLockKeyFormat, doctor.Email, utils.FormatTimeslot(slot))
	locked, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, constvars.BookingLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, exceptions.ErrSlotLockNotAcquired(fmt.Errorf("lock %s already held", lockKey))
	}
	defer func() {
		unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue)
		if unlockErr != nil {
			uc.Log.Warn("bookingUsecase.Book error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	consumed, err := uc.DoctorRepository.ConsumeTimeslot(ctx, doctor.Email, slot)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, exceptions.ErrSlotUnavailable(fmt.Errorf("timeslot %s not in doctor %s availability", request.Timeslot, doctor.Email))
	}

	appointmentID := utils.GenerateAppointmentID()
	event, err := uc.createCalendarEvent(ctx, session, doctor, request, appointmentID)
	if err != nil {
		uc.restoreTimeslot(ctx, requestID, doctor.Email, slot)
		return nil, err
	}

	appointment := &models.Appointment{
		ID:              appointmentID,
		DoctorEmail:     doctor.Email,
		DoctorName:      doctor.Name,
		PatientEmail:    session.Email,
		PatientName:     session.Name,
		Timeslot:        slot,
		MeetingLink:     event.MeetingLink(),
		CalendarEventID: event.ID,
	}
	appointment, err = uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		uc.deleteCalendarEvent(ctx, requestID, session, event.ID)
		uc.restoreTimeslot(ctx, requestID, doctor.Email, slot)
		return nil, err
	}

	notificationQueued := queueNotification(ctx, uc.Log, uc.NotificationService, &requests.NotificationPayload{
		TemplateID: constvars.TemplateBookingConfirmed,
		To:         appointment.PatientEmail,
		Params: map[string]string{
			constvars.MailParamPatientName: appointment.PatientName,
			constvars.MailParamDoctorName:  appointment.DoctorName,
			constvars.MailParamTimeslot:    utils.FormatTimeslot(appointment.Timeslot),
			constvars.MailParamMeetingLink: appointment.MeetingLink,
		},
	})

	uc.Log.Info("bookingUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingCalendarEventIDKey, appointment.CalendarEventID),
	)

	return &responses.BookAppointment{
		Appointment:        appointments.BuildAppointmentResponse(appointment),
		NotificationQueued: notificationQueued,
	}, nil
}

func (uc *bookingUsecase) createCalendarEvent(
	ctx context.Context,
	session *models.Session,
	doctor *models.Doctor,
	request *requests.BookAppointmentRequest,
	appointmentID string,
) (*calendar_dto.Event, error) {
	event := &calendar_dto.Event{
		Summary:     fmt.Sprintf("Session with %s", doctor.Name),
		Description: "Booked via TheraMind",
		Start:       calendar_dto.EventTime{DateTime: request.StartTime},
		End:         calendar_dto.EventTime{DateTime: utils.TimeslotEnd(request.StartTime)},
		Attendees: []calendar_dto.Attendee{
			{Email: doctor.Email, DisplayName: doctor.Name},
			{Email: request.PatientEmail, DisplayName: request.PatientName},
		},
		ConferenceData: &calendar_dto.ConferenceData{
			CreateRequest: &calendar_dto.ConferenceCreateRequest{RequestID: appointmentID},
		},
	}

	var created *calendar_dto.Event
	err := callWithCalendarAuth(ctx, uc.CalendarTokenSource, session, func(accessToken string) error {
		var callErr error
		created, callErr = uc.CalendarClient.CreateEvent(ctx, accessToken, event)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *bookingUsecase) deleteCalendarEvent(ctx context.Context, requestID string, session *models.Session, eventID string) {
	err := callWithCalendarAuth(ctx, uc.CalendarTokenSource, session, func(accessToken string) error {
		return uc.CalendarClient.DeleteEvent(ctx, accessToken, eventID)
	})
	if err != nil {
		uc.Log.Warn("bookingUsecase.Book error deleting orphaned calendar event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCalendarEventIDKey, eventID),
			zap.Error(err),
		)
	}
}

func (uc *bookingUsecase) restoreTimeslot(ctx context.Context, requestID, doctorEmail string, slot time.Time) {
	err := uc.DoctorRepository.RestoreTimeslot(ctx, doctorEmail, slot)
	if err != nil {
		uc.Log.Error("bookingUsecase.Book error restoring timeslot after failed booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorEmailKey, doctorEmail),
			zap.Time(constvars.LoggingTimeslotKey, slot),
			zap.Error(err),
		)
	}
}

// queueNotification is best effort: a failed enqueue is logged and reported
// in the response, never an error the workflow rolls back on.
func queueNotification(ctx context.Context, log *zap.Logger, notificationService contracts.NotificationService, payload *requests.NotificationPayload) bool {
	err := notificationService.Queue(ctx, payload)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		log.Warn("notification enqueue failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateIDKey, payload.TemplateID),
			zap.Error(err),
		)
		return false
	}
	return true
}
