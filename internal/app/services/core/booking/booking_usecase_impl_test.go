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

func futureSlot(hours int) time.Time {
	return time.Now().UTC().Add(time.Duration(hours) * time.Hour).Truncate(time.Minute)
}

func availableDoctor(slots ...time.Time) *models.Doctor {
	return &models.Doctor{Email: "dr@x.com", Name: "Dr. X", Timeslots: slots}
}

func TestBook_ConsumesSlotAndCreatesAppointment(t *testing.T) {
	slotA := futureSlot(1)
	slotB := futureSlot(2)
	h := newBookingHarness(availableDoctor(slotA, slotB))
	uc := h.bookingUsecase()

	response, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slotA.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, "dr@x.com", response.DoctorEmail)
	assert.Equal(t, "pat@y.com", response.PatientEmail)
	assert.True(t, response.Timeslot.Equal(slotA))
	assert.Equal(t, "evt-1", response.CalendarEventID)
	assert.Equal(t, "https://meet.example.com/evt-1", response.MeetingLink)
	assert.True(t, response.NotificationQueued)

	doctor := h.doctors.doctors["dr@x.com"]
	assert.False(t, doctor.HasTimeslot(slotA))
	assert.True(t, doctor.HasTimeslot(slotB))
	assert.Len(t, h.appointments.appointments, 1)
	assert.Equal(t, []string{constvars.TemplateBookingConfirmed}, h.notifier.queued)
}

func TestBook_SecondBookingForSameSlotLoses(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	uc := h.bookingUsecase()

	_, err := uc.Book(context.Background(), patientSessionData(t, "first@y.com", "First"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.NoError(t, err)

	_, err = uc.Book(context.Background(), patientSessionData(t, "second@y.com", "Second"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusConflict))
	assert.Len(t, h.appointments.appointments, 1)
}

func TestBook_DuplicateBookingBySamePatient(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	h.appointments.appointments["apt-0"] = &models.Appointment{
		ID:           "apt-0",
		DoctorEmail:  "other@x.com",
		PatientEmail: "pat@y.com",
		Timeslot:     slot,
	}
	uc := h.bookingUsecase()

	_, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusConflict))
	// Nothing consumed.
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(slot))
}

func TestBook_PastSlotRejected(t *testing.T) {
	slot := time.Now().UTC().Add(-time.Hour).Truncate(time.Minute)
	h := newBookingHarness(availableDoctor(slot))
	uc := h.bookingUsecase()

	_, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusBadRequest))
}

func TestBook_LockContentionRejected(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	h.locker.contended = true
	uc := h.bookingUsecase()

	_, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusConflict))
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(slot))
}

func TestBook_CalendarFailureRestoresSlot(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	h.calendar.failCreates = 2
	uc := h.bookingUsecase()

	_, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusBadGateway))
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(slot))
	assert.Empty(t, h.appointments.appointments)
}

func TestBook_ExpiredTokenRefreshedOnce(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	h.calendar.unauthorizedOnce = true
	uc := h.bookingUsecase()

	response, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.tokens.refreshCalls)
	assert.Equal(t, "evt-1", response.CalendarEventID)
}

func TestBook_NoCalendarGrantRejected(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	uc := h.bookingUsecase()

	sessionData := `{"session_id":"sid-2","email":"pat@y.com","name":"Pat","role":"patient"}`
	_, err := uc.Book(context.Background(), sessionData, &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusUnauthorized))
	// Slot restored after the compensation path.
	assert.True(t, h.doctors.doctors["dr@x.com"].HasTimeslot(slot))
}

func TestBook_NotificationFailureDoesNotFailBooking(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	h.notifier.queueErr = exceptions.ErrQueuePublish(assert.AnError, "theramind-mailer")
	uc := h.bookingUsecase()

	response, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.False(t, response.NotificationQueued)
	assert.Len(t, h.appointments.appointments, 1)
}

func TestBook_DoctorRoleForbidden(t *testing.T) {
	slot := futureSlot(1)
	h := newBookingHarness(availableDoctor(slot))
	uc := h.bookingUsecase()

	sessionData := `{"session_id":"sid-3","email":"dr@x.com","name":"Dr. X","role":"doctor"}`
	_, err := uc.Book(context.Background(), sessionData, &requests.BookAppointmentRequest{
		DoctorEmail: "dr@x.com",
		Timeslot:    slot.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusForbidden))
}

func TestBook_UnknownDoctor(t *testing.T) {
	h := newBookingHarness()
	uc := h.bookingUsecase()

	_, err := uc.Book(context.Background(), patientSessionData(t, "pat@y.com", "Pat"), &requests.BookAppointmentRequest{
		DoctorEmail: "ghost@x.com",
		Timeslot:    futureSlot(1).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusNotFound))
}
