package booking

import (
	"context"
	"testing"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAppointment(h *bookingHarness, slot time.Time) *models.Appointment {
	appointment := &models.Appointment{
		ID:              "apt-1",
		DoctorEmail:     "dr@x.com",
		DoctorName:      "Dr. X",
		PatientEmail:    "pat@y.com",
		PatientName:     "Pat",
		Timeslot:        slot,
		MeetingLink:     "https://meet.example.com/evt-1",
		CalendarEventID: "evt-1",
	}
	h.appointments.appointments[appointment.ID] = appointment
	return appointment
}

func TestCancel_RestoresSlotAndCleansUpRemote(t *testing.T) {
	booked := futureSlot(1)
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, booked)
	uc := h.lifecycleUsecase()

	response, err := uc.Cancel(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1")
	require.NoError(t, err)

	assert.True(t, response.LocalCancelled)
	assert.Equal(t, constvars.RemoteCleanupOK, response.RemoteCleanup)
	assert.True(t, response.RestoredTimeslot.Equal(booked))
	assert.True(t, response.NotificationQueued)
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(booked))
	assert.Empty(t, h.appointments.appointments)
	assert.Equal(t, []string{"evt-1"}, h.calendar.deleted)
}

func TestCancel_SecondCancelNotFound(t *testing.T) {
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, futureSlot(1))
	uc := h.lifecycleUsecase()

	_, err := uc.Cancel(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1")
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1")
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusNotFound))
}

func TestCancel_RemoteCleanupFailureStillCancels(t *testing.T) {
	booked := futureSlot(1)
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, booked)
	h.calendar.failDeletes = 2
	uc := h.lifecycleUsecase()

	response, err := uc.Cancel(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1")
	require.NoError(t, err)

	assert.True(t, response.LocalCancelled)
	assert.Equal(t, constvars.RemoteCleanupFailed, response.RemoteCleanup)
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(booked))
	assert.Empty(t, h.appointments.appointments)
}

func TestCancel_DoctorParticipantMayCancel(t *testing.T) {
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, futureSlot(1))
	uc := h.lifecycleUsecase()

	sessionData := `{"session_id":"sid-4","email":"dr@x.com","name":"Dr. X","role":"doctor","calendar":{"access_token":"tok","refresh_token":"ref","expires_at":"2099-01-01T00:00:00Z"}}`
	response, err := uc.Cancel(context.Background(), sessionData, "apt-1")
	require.NoError(t, err)
	assert.True(t, response.LocalCancelled)
}

func TestCancel_NoPatientEmailRejectedBeforeMutation(t *testing.T) {
	booked := futureSlot(1)
	h := newBookingHarness(availableDoctor())
	appointment := seedAppointment(h, booked)
	appointment.PatientEmail = ""
	uc := h.lifecycleUsecase()

	sessionData := `{"session_id":"sid-5","email":"dr@x.com","name":"Dr. X","role":"doctor","calendar":{"access_token":"tok","refresh_token":"ref","expires_at":"2099-01-01T00:00:00Z"}}`
	_, err := uc.Cancel(context.Background(), sessionData, "apt-1")
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusUnprocessableEntity))
	assert.Len(t, h.appointments.appointments, 1)
	assert.Empty(t, h.calendar.deleted)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, futureSlot(1))
	uc := h.lifecycleUsecase()

	_, err := uc.Cancel(context.Background(), patientSessionData(t, "intruder@z.com", "Intruder"), "apt-1")
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusForbidden))
	assert.Len(t, h.appointments.appointments, 1)
}

func TestReschedule_SwapsSlots(t *testing.T) {
	oldSlot := futureSlot(1)
	newSlot := futureSlot(2)
	h := newBookingHarness(availableDoctor(newSlot))
	seedAppointment(h, oldSlot)
	uc := h.lifecycleUsecase()

	response, err := uc.Reschedule(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1", &requests.RescheduleAppointmentRequest{
		NewTimeslot: newSlot.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.True(t, response.Timeslot.Equal(newSlot))
	assert.True(t, response.PreviousTimeslot.Equal(oldSlot))
	assert.True(t, response.NotificationQueued)

	doctor := h.doctors.doctors["dr@x.com"]
	assert.True(t, doctor.HasTimeslot(oldSlot))
	assert.False(t, doctor.HasTimeslot(newSlot))
	// One slot out, one slot in: availability size is preserved.
	assert.Len(t, doctor.Timeslots, 1)
	assert.True(t, h.appointments.appointments["apt-1"].Timeslot.Equal(newSlot))
	assert.Equal(t, []string{"evt-1"}, h.calendar.updated)
}

func TestReschedule_NewSlotUnavailable(t *testing.T) {
	oldSlot := futureSlot(1)
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, oldSlot)
	uc := h.lifecycleUsecase()

	_, err := uc.Reschedule(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1", &requests.RescheduleAppointmentRequest{
		NewTimeslot: futureSlot(2).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusConflict))
	assert.True(t, h.appointments.appointments["apt-1"].Timeslot.Equal(oldSlot))
}

func TestReschedule_CalendarFailureRestoresNewSlot(t *testing.T) {
	oldSlot := futureSlot(1)
	newSlot := futureSlot(2)
	h := newBookingHarness(availableDoctor(newSlot))
	seedAppointment(h, oldSlot)
	h.calendar.failUpdates = 2
	uc := h.lifecycleUsecase()

	_, err := uc.Reschedule(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1", &requests.RescheduleAppointmentRequest{
		NewTimeslot: newSlot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusBadGateway))
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(newSlot))
	assert.True(t, h.appointments.appointments["apt-1"].Timeslot.Equal(oldSlot))
}

func TestReschedule_PastSlotRejected(t *testing.T) {
	h := newBookingHarness(availableDoctor())
	seedAppointment(h, futureSlot(1))
	uc := h.lifecycleUsecase()

	_, err := uc.Reschedule(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), "apt-1", &requests.RescheduleAppointmentRequest{
		NewTimeslot: time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusBadRequest))
}

// End-to-end walk of one doctor's day: publish two slots, book one, move it,
// cancel it, and watch availability come back.
func TestBookingLifecycleScenario(t *testing.T) {
	slot1000 := futureSlot(24).Truncate(time.Hour)
	slot1030 := slot1000.Add(30 * time.Minute)
	h := newBookingHarness(availableDoctor(slot1000, slot1030))
	book := h.bookingUsecase()
	lifecycle := h.lifecycleUsecase()

	booked, err := book.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot1000.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Len(t, h.doctors.doctors["dr@x.com"].Timeslots, 1)

	rescheduled, err := lifecycle.Reschedule(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), booked.ID, &requests.RescheduleAppointmentRequest{
		NewTimeslot: slot1030.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.True(t, rescheduled.Timeslot.Equal(slot1030))
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(slot1000))

	cancelled, err := lifecycle.Cancel(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), booked.ID)
	require.NoError(t, err)
	assert.Equal(t, constvars.RemoteCleanupOK, cancelled.RemoteCleanup)

	doctor := h.doctors.doctors["dr@x.com"]
	assert.True(t, doctor.HasTimeslot(slot1000))
	assert.True(t, doctor.HasTimeslot(slot1030))
	assert.Len(t, doctor.Timeslots, 2)
}
