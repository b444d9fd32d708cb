package contracts

import (
	"context"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/dto/responses"
)

// BookingUsecase owns the book transition: selection in, persisted appointment
// plus remote calendar event out.
type BookingUsecase interface {
	Book(ctx context.Context, sessionData string, request *requests.BookAppointmentRequest) (*responses.BookAppointment, error)
}

// LifecycleUsecase owns cancellation and rescheduling of an existing
// appointment, including slot restoration and remote event cleanup.
type LifecycleUsecase interface {
	Cancel(ctx context.Context, sessionData, appointmentID string) (*responses.CancelAppointment, error)
	Reschedule(ctx context.Context, sessionData, appointmentID string, request *requests.RescheduleAppointmentRequest) (*responses.RescheduleAppointment, error)
}
