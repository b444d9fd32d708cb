package booking

import (
	"context"
	"fmt"
	"testing"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/calendar_dto"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDoctorRepository struct {
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	all := make([]models.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		all = append(all, *d)
	}
	return all, nil
}

func (r *fakeDoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.doctors[email], nil
}

func (r *fakeDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error) {
	r.doctors[doctor.Email] = doctor
	return doctor, nil
}

func (r *fakeDoctorRepository) SetTimeslots(ctx context.Context, email string, slots []time.Time) error {
	r.doctors[email].Timeslots = slots
	return nil
}

func (r *fakeDoctorRepository) ConsumeTimeslot(ctx context.Context, email string, slot time.Time) (bool, error) {
	doctor, ok := r.doctors[email]
	if !ok {
		return false, nil
	}
	for i, s := range doctor.Timeslots {
		if s.Equal(slot) {
			doctor.Timeslots = append(doctor.Timeslots[:i], doctor.Timeslots[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepository) RestoreTimeslot(ctx context.Context, email string, slot time.Time) error {
	doctor := r.doctors[email]
	if !doctor.HasTimeslot(slot) {
		doctor.Timeslots = append(doctor.Timeslots, slot)
	}
	return nil
}

type fakeAppointmentRepository struct {
	appointments map[string]*models.Appointment
	createErr    error
	updateErr    error
}

func (r *fakeAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	appointment.CreatedAt = time.Now().UTC()
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return r.appointments[appointmentID], nil
}

func (r *fakeAppointmentRepository) FindByPatientEmail(ctx context.Context, patientEmail string) ([]models.Appointment, error) {
	found := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if a.PatientEmail == patientEmail {
			found = append(found, *a)
		}
	}
	return found, nil
}

func (r *fakeAppointmentRepository) FindByDoctorEmail(ctx context.Context, doctorEmail string) ([]models.Appointment, error) {
	found := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if a.DoctorEmail == doctorEmail {
			found = append(found, *a)
		}
	}
	return found, nil
}

func (r *fakeAppointmentRepository) FindByPatientAndTimeslot(ctx context.Context, patientEmail string, timeslot time.Time) (*models.Appointment, error) {
	for _, a := range r.appointments {
		if a.PatientEmail == patientEmail && a.Timeslot.Equal(timeslot) {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepository) UpdateTimeslot(ctx context.Context, appointmentID string, timeslot time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.appointments[appointmentID].Timeslot = timeslot
	return nil
}

func (r *fakeAppointmentRepository) DeleteByID(ctx context.Context, appointmentID string) (bool, error) {
	if _, ok := r.appointments[appointmentID]; !ok {
		return false, nil
	}
	delete(r.appointments, appointmentID)
	return true, nil
}

type fakeSessionService struct {
	saved []*models.Session
}

func (s *fakeSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (s *fakeSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

func (s *fakeSessionService) SaveSession(ctx context.Context, session *models.Session) error {
	s.saved = append(s.saved, session)
	return nil
}

func (s *fakeSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return nil
}

type fakeLockerService struct {
	contended bool
	held      map[string]bool
}

func (l *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if l.contended {
		return false, "", nil
	}
	if l.held == nil {
		l.held = make(map[string]bool)
	}
	l.held[key] = true
	return true, "lock-value", nil
}

func (l *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	delete(l.held, key)
	return nil
}

type fakeCalendarClient struct {
	nextEventID      string
	failCreates      int
	failUpdates      int
	failDeletes      int
	unauthorizedOnce bool

	created []calendar_dto.Event
	updated []string
	deleted []string
}

func (c *fakeCalendarClient) unauthorized() error {
	return exceptions.ErrCalendarTokenExpired(fmt.Errorf("stale token"))
}

func (c *fakeCalendarClient) CreateEvent(ctx context.Context, accessToken string, event *calendar_dto.Event) (*calendar_dto.Event, error) {
	if c.unauthorizedOnce {
		c.unauthorizedOnce = false
		return nil, c.unauthorized()
	}
	if c.failCreates > 0 {
		c.failCreates--
		return nil, exceptions.ErrCalendarProvider(fmt.Errorf("create failed"), constvars.StatusInternalServerError)
	}
	created := *event
	created.ID = c.nextEventID
	created.ConferenceData = &calendar_dto.ConferenceData{
		EntryPoints: []calendar_dto.EntryPoint{
			{EntryPointType: calendar_dto.EntryPointTypeVideo, URI: "https://meet.example.com/" + created.ID},
		},
	}
	c.created = append(c.created, created)
	return &created, nil
}

func (c *fakeCalendarClient) UpdateEventTime(ctx context.Context, accessToken, eventID string, start, end time.Time) (*calendar_dto.Event, error) {
	if c.unauthorizedOnce {
		c.unauthorizedOnce = false
		return nil, c.unauthorized()
	}
	if c.failUpdates > 0 {
		c.failUpdates--
		return nil, exceptions.ErrCalendarProvider(fmt.Errorf("update failed"), constvars.StatusInternalServerError)
	}
	c.updated = append(c.updated, eventID)
	return &calendar_dto.Event{ID: eventID, Start: calendar_dto.EventTime{DateTime: start}, End: calendar_dto.EventTime{DateTime: end}}, nil
}

func (c *fakeCalendarClient) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	if c.failDeletes > 0 {
		c.failDeletes--
		return exceptions.ErrCalendarProvider(fmt.Errorf("delete failed"), constvars.StatusInternalServerError)
	}
	c.deleted = append(c.deleted, eventID)
	return nil
}

type fakeTokenSource struct {
	accessErr    error
	refreshErr   error
	refreshCalls int
}

func (ts *fakeTokenSource) AccessToken(ctx context.Context, session *models.Session) (string, error) {
	if ts.accessErr != nil {
		return "", ts.accessErr
	}
	if session.Calendar == nil {
		return "", exceptions.ErrCalendarAuthRequired(fmt.Errorf("no calendar grant"))
	}
	return session.Calendar.AccessToken, nil
}

func (ts *fakeTokenSource) Refresh(ctx context.Context, session *models.Session) (string, error) {
	ts.refreshCalls++
	if ts.refreshErr != nil {
		return "", ts.refreshErr
	}
	return "refreshed-token", nil
}

type fakeNotificationService struct {
	queueErr error
	queued   []string
}

func (n *fakeNotificationService) Queue(ctx context.Context, payload *requests.NotificationPayload) error {
	if n.queueErr != nil {
		return n.queueErr
	}
	n.queued = append(n.queued, payload.TemplateID)
	return nil
}

func patientSessionData(t *testing.T, email, name string) string {
	t.Helper()
	data, err := json.Marshal(&models.Session{
		SessionID: "sid-1",
		Email:     email,
		Name:      name,
		Role:      constvars.RoleTypePatient,
		Calendar: &models.CalendarToken{
			AccessToken:  "tok-1",
			RefreshToken: "ref-1",
			ExpiresAt:    time.Now().UTC().Add(time.Hour),
		},
	})
	require.NoError(t, err)
	return string(data)
}

type bookingHarness struct {
	doctors      *fakeDoctorRepository
	appointments *fakeAppointmentRepository
	sessions     *fakeSessionService
	locker       *fakeLockerService
	calendar     *fakeCalendarClient
	tokens       *fakeTokenSource
	notifier     *fakeNotificationService
}

func newBookingHarness(doctors ...*models.Doctor) *bookingHarness {
	doctorMap := make(map[string]*models.Doctor)
	for _, d := range doctors {
		doctorMap[d.Email] = d
	}
	return &bookingHarness{
		doctors:      &fakeDoctorRepository{doctors: doctorMap},
		appointments: &fakeAppointmentRepository{appointments: make(map[string]*models.Appointment)},
		sessions:     &fakeSessionService{},
		locker:       &fakeLockerService{},
		calendar:     &fakeCalendarClient{nextEventID: "evt-1"},
		tokens:       &fakeTokenSource{},
		notifier:     &fakeNotificationService{},
	}
}

func (h *bookingHarness) bookingUsecase() *bookingUsecase {
	return &bookingUsecase{
		DoctorRepository:      h.doctors,
		AppointmentRepository: h.appointments,
		SessionService:        h.sessions,
		LockerService:         h.locker,
		CalendarClient:        h.calendar,
		CalendarTokenSource:   h.tokens,
		NotificationService:   h.notifier,
		Log:                   zap.NewNop(),
	}
}

func (h *bookingHarness) lifecycleUsecase() *lifecycleUsecase {
	return &lifecycleUsecase{
		DoctorRepository:      h.doctors,
		AppointmentRepository: h.appointments,
		SessionService:        h.sessions,
		LockerService:         h.locker,
		CalendarClient:        h.calendar,
		CalendarTokenSource:   h.tokens,
		NotificationService:   h.notifier,
		Log:                   zap.NewNop(),
	}
}
