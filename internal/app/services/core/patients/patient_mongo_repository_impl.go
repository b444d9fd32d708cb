package patients

import (
	"context"
	"sync"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	patientMongoRepositoryInstance contracts.PatientRepository
	oncePatientMongoRepository     sync.Once
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) contracts.PatientRepository {
	oncePatientMongoRepository.Do(func() {
		patientMongoRepositoryInstance = &PatientMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
		}
	})
	return patientMongoRepositoryInstance
}

func (r *PatientMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

// UpsertPatient keeps the patient document in sync with what the identity
// provider last told us at login.
func (r *PatientMongoRepository) UpsertPatient(ctx context.Context, patient *models.Patient) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":      patient.Name,
			"verified":  patient.Verified,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"email":     patient.Email,
			"createdAt": now,
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"email": patient.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
