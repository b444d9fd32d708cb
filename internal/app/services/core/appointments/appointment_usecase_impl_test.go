package appointments

import (
	"context"
	"testing"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAppointmentRepository struct {
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepository(appointments ...*models.Appointment) *fakeAppointmentRepository {
	repo := &fakeAppointmentRepository{appointments: make(map[string]*models.Appointment)}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (r *fakeAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	r.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (r *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return r.appointments[appointmentID], nil
}

func (r *fakeAppointmentRepository) FindByPatientEmail(ctx context.Context, patientEmail string) ([]models.Appointment, error) {
	matches := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if a.PatientEmail == patientEmail {
			matches = append(matches, *a)
		}
	}
	return matches, nil
}

func (r *fakeAppointmentRepository) FindByDoctorEmail(ctx context.Context, doctorEmail string) ([]models.Appointment, error) {
	matches := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if a.DoctorEmail == doctorEmail {
			matches = append(matches, *a)
		}
	}
	return matches, nil
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

type fakeSessionService struct{}

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
	return nil
}

func (s *fakeSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return nil
}

func sessionData(t *testing.T, email, role string) string {
	t.Helper()
	data, err := json.Marshal(&models.Session{SessionID: "sid-1", Email: email, Role: role})
	require.NoError(t, err)
	return string(data)
}

func newTestAppointmentUsecase(repo *fakeAppointmentRepository) *appointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: repo,
		SessionService:        &fakeSessionService{},
		Log:                   zap.NewNop(),
	}
}

func seededAppointments() []*models.Appointment {
	slot := time.Now().UTC().Add(time.Hour).Truncate(time.Minute)
	return []*models.Appointment{
		{
			ID:           "apt-1",
			DoctorEmail:  "dr@x.com",
			DoctorName:   "Dr. X",
			PatientEmail: "pat@y.com",
			PatientName:  "Pat",
			Timeslot:     slot,
			MeetingLink:  "https://meet.example.com/evt-1",
		},
		{
			ID:           "apt-2",
			DoctorEmail:  "dr@x.com",
			DoctorName:   "Dr. X",
			PatientEmail: "other@z.com",
			PatientName:  "Other",
			Timeslot:     slot.Add(time.Hour),
		},
	}
}

func TestFindAll_PatientSeesOnlyOwnBookings(t *testing.T) {
	uc := newTestAppointmentUsecase(newFakeAppointmentRepository(seededAppointments()...))

	response, err := uc.FindAll(context.Background(), sessionData(t, "pat@y.com", constvars.RoleTypePatient))
	require.NoError(t, err)
	require.Len(t, response, 1)
	assert.Equal(t, "apt-1", response[0].ID)
	assert.Equal(t, "https://meet.example.com/evt-1", response[0].MeetingLink)
}

func TestFindAll_DoctorSeesAssignedBookings(t *testing.T) {
	uc := newTestAppointmentUsecase(newFakeAppointmentRepository(seededAppointments()...))

	response, err := uc.FindAll(context.Background(), sessionData(t, "dr@x.com", constvars.RoleTypeDoctor))
	require.NoError(t, err)
	assert.Len(t, response, 2)
}

func TestFindByID_NonParticipantForbidden(t *testing.T) {
	uc := newTestAppointmentUsecase(newFakeAppointmentRepository(seededAppointments()...))

	_, err := uc.FindByID(context.Background(), sessionData(t, "other@z.com", constvars.RoleTypePatient), "apt-1")
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusForbidden))
}

func TestFindByID_UnknownAppointment(t *testing.T) {
	uc := newTestAppointmentUsecase(newFakeAppointmentRepository())

	_, err := uc.FindByID(context.Background(), sessionData(t, "pat@y.com", constvars.RoleTypePatient), "apt-404")
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusNotFound))
}
