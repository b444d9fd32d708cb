package booking

import (
	"context"
	"fmt"
	"sync"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/app/services/core/appointments"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/dto/responses"
	"theramind-service/internal/pkg/exceptions"
	"theramind-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type lifecycleUsecase struct {
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
	lifecycleUsecaseInstance contracts.LifecycleUsecase
	onceLifecycleUsecase     sync.Once
)

func NewLifecycleUsecase(
	doctorMongoRepository contracts.DoctorRepository,
	appointmentMongoRepository contracts.AppointmentRepository,
	sessionService contracts.SessionService,
	lockerService contracts.LockerService,
	calendarClient contracts.CalendarClient,
	calendarTokenSource contracts.CalendarTokenSource,
	notificationService contracts.NotificationService,
	logger *zap.Logger,
) contracts.LifecycleUsecase {
	onceLifecycleUsecase.Do(func() {
		lifecycleUsecaseInstance = &lifecycleUsecase{
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
	return lifecycleUsecaseInstance
}

// Cancel removes the appointment and restores its timeslot, then attempts the
// remote calendar cleanup. The local outcome and the remote outcome are
// reported separately: a dead calendar provider never blocks a cancellation.
func (uc *lifecycleUsecase) Cancel(ctx context.Context, sessionData, appointmentID string) (*responses.CancelAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("lifecycleUsecase.Cancel called",
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
	// Recipient must be resolvable before anything is mutated.
	if appointment.PatientEmail == "" {
		return nil, exceptions.ErrMissingContactInfo(fmt.Errorf("appointment %s has no patient email", appointmentID))
	}

	deleted, err := uc.AppointmentRepository.DeleteByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		// Lost a race with another cancel of the same appointment.
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s already cancelled", appointmentID))
	}

	err = uc.DoctorRepository.RestoreTimeslot(ctx, appointment.DoctorEmail, appointment.Timeslot)
	if err != nil {
		uc.Log.Error("lifecycleUsecase.Cancel error restoring timeslot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorEmailKey, appointment.DoctorEmail),
			zap.Time(constvars.LoggingTimeslotKey, appointment.Timeslot),
			zap.Error(err),
		)
		return nil, err
	}

	remoteCleanup := constvars.RemoteCleanupOK
	err = callWithCalendarAuth(ctx, uc.CalendarTokenSource, session, func(accessToken string) error {
		return uc.CalendarClient.DeleteEvent(ctx, accessToken, appointment.CalendarEventID)
	})
	if err != nil {
		remoteCleanup = constvars.RemoteCleanupFailed
		uc.Log.Warn("lifecycleUsecase.Cancel remote calendar cleanup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCalendarEventIDKey, appointment.CalendarEventID),
			zap.Error(err),
		)
	}

	notificationQueued := queueNotification(ctx, uc.Log, uc.NotificationService, &requests.NotificationPayload{
		TemplateID: constvars.TemplateAppointmentCancelled,
		To:         appointment.PatientEmail,
		Params: map[string]string{
			constvars.MailParamPatientName: appointment.PatientName,
			constvars.MailParamDoctorName:  appointment.DoctorName,
			constvars.MailParamTimeslot:    utils.FormatTimeslot(appointment.Timeslot),
			constvars.MailParamActor:       session.Role,
		},
	})

	uc.Log.Info("lifecycleUsecase.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("remote_cleanup", remoteCleanup),
	)

	return &responses.CancelAppointment{
		AppointmentID:      appointmentID,
		LocalCancelled:     true,
		RemoteCleanup:      remoteCleanup,
		RestoredTimeslot:   appointment.Timeslot,
		NotificationQueued: notificationQueued,
	}, nil
}

// Reschedule swaps the appointment onto a new timeslot: the new slot is
// consumed first, the remote event is moved, the appointment is rewritten,
// and only then does the old slot return to availability. A failure at any
// step puts the consumed slot back.
func (uc *lifecycleUsecase) Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointmentRequest) (*responses.RescheduleAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("lifecycleUsecase.Reschedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingNewTimeslotKey, request.NewTimeslot),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	newSlot, err := utils.ParseTimeslot(request.NewTimeslot)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	newSlot = newSlot.UTC().Truncate(time.Minute)
	if !utils.IsFutureTimeslot(newSlot, time.Now().UTC()) {
		return nil, exceptions.ErrTimeslotNotFuture(fmt.Errorf("timeslot %s is not in the future", request.NewTimeslot))
	}
	request.StartTime = newSlot

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
	if appointment.Timeslot.Equal(newSlot) {
		return nil, exceptions.ErrSlotUnavailable(fmt.Errorf("appointment %s already occupies timeslot %s", appointmentID, request.NewTimeslot))
	}

	lockKey := fmt.Sprintf(constvars.BookingLockKeyFormat, appointment.DoctorEmail, utils.FormatTimeslot(newSlot))
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
			uc.Log.Warn("lifecycleUsecase.Reschedule error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	consumed, err := uc.DoctorRepository.ConsumeTimeslot(ctx, appointment.DoctorEmail, newSlot)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, exceptions.ErrSlotUnavailable(fmt.Errorf("timeslot %s not in doctor %s availability", request.NewTimeslot, appointment.DoctorEmail))
	}

	err = callWithCalendarAuth(ctx, uc.CalendarTokenSource, session, func(accessToken string) error {
		_, callErr := uc.CalendarClient.UpdateEventTime(ctx, accessToken, appointment.CalendarEventID, newSlot, utils.TimeslotEnd(newSlot))
		return callErr
	})
	if err != nil {
		uc.restoreTimeslot(ctx, requestID, appointment.DoctorEmail, newSlot)
		return nil, err
	}

	err = uc.AppointmentRepository.UpdateTimeslot(ctx, appointmentID, newSlot)
	if err != nil {
		uc.restoreTimeslot(ctx, requestID, appointment.DoctorEmail, newSlot)
		uc.revertCalendarEvent(ctx, requestID, session, appointment)
		return nil, err
	}

	previousSlot := appointment.Timeslot
	err = uc.DoctorRepository.RestoreTimeslot(ctx, appointment.DoctorEmail, previousSlot)
	if err != nil {
		uc.Log.Error("lifecycleUsecase.Reschedule error restoring previous timeslot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorEmailKey, appointment.DoctorEmail),
			zap.Time(constvars.LoggingTimeslotKey, previousSlot),
			zap.Error(err),
		)
		return nil, err
	}
	appointment.Timeslot = newSlot

	notificationQueued := false
	if appointment.PatientEmail != "" {
		notificationQueued = queueNotification(ctx, uc.Log, uc.NotificationService, &requests.NotificationPayload{
			TemplateID: constvars.TemplateAppointmentRescheduled,
			To:         appointment.PatientEmail,
			Params: map[string]string{
				constvars.MailParamPatientName: appointment.PatientName,
				constvars.MailParamDoctorName:  appointment.DoctorName,
				constvars.MailParamTimeslot:    utils.FormatTimeslot(newSlot),
				constvars.MailParamMeetingLink: appointment.MeetingLink,
			},
		})
	}

	uc.Log.Info("lifecycleUsecase.Reschedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Time(constvars.LoggingNewTimeslotKey, newSlot),
	)

	return &responses.RescheduleAppointment{
		Appointment:        appointments.BuildAppointmentResponse(appointment),
		PreviousTimeslot:   previousSlot,
		NotificationQueued: notificationQueued,
	}, nil
}

func (uc *lifecycleUsecase) restoreTimeslot(ctx context.Context, requestID, doctorEmail string, slot time.Time) {
	err := uc.DoctorRepository.RestoreTimeslot(ctx, doctorEmail, slot)
	if err != nil {
		uc.Log.Error("lifecycleUsecase error restoring timeslot after failed reschedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorEmailKey, doctorEmail),
			zap.Time(constvars.LoggingTimeslotKey, slot),
			zap.Error(err),
		)
	}
}

// revertCalendarEvent moves the remote event back to the original slot after
// a failed local update. Best effort.
func (uc *lifecycleUsecase) revertCalendarEvent(ctx context.Context, requestID string, session *models.Session, appointment *models.Appointment) {
	err := callWithCalendarAuth(ctx, uc.CalendarTokenSource, session, func(accessToken string) error {
		_, callErr := uc.CalendarClient.UpdateEventTime(ctx, accessToken, appointment.CalendarEventID, appointment.Timeslot, utils.TimeslotEnd(appointment.Timeslot))
		return callErr
	})
	if err != nil {
		uc.Log.Warn("lifecycleUsecase.Reschedule error reverting calendar event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCalendarEventIDKey, appointment.CalendarEventID),
			zap.Error(err),
		)
	}
}
