package contracts

import (
	"context"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/dto/responses"
	"time"
)

type DoctorUsecase interface {
	FindAll(ctx context.Context) ([]responses.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*responses.Doctor, error)
	CreateDoctor(ctx context.Context, request *requests.CreateDoctorRequest) (*responses.Doctor, error)
	SetTimeslots(ctx context.Context, sessionData string, request *requests.SetTimeslotsRequest) (*responses.Doctor, error)
}

// DoctorRepository is the timeslot store. ConsumeTimeslot is the only way a
// slot leaves the available set during booking: a single conditional update
// that removes the slot only if it is still present, reporting whether it did.
type DoctorRepository interface {
	FindAll(ctx context.Context) ([]models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error)
	SetTimeslots(ctx context.Context, email string, slots []time.Time) error
	ConsumeTimeslot(ctx context.Context, email string, slot time.Time) (bool, error)
	RestoreTimeslot(ctx context.Context, email string, slot time.Time) error
}
