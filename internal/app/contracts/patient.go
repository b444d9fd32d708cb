package contracts

import (
	"context"
	"theramind-service/internal/app/models"
)

type PatientRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	UpsertPatient(ctx context.Context, patient *models.Patient) error
}
