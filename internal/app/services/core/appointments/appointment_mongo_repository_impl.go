package appointments

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
	appointmentMongoRepositoryInstance contracts.AppointmentRepository
	onceAppointmentMongoRepository     sync.Once
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	onceAppointmentMongoRepository.Do(func() {
		appointmentMongoRepositoryInstance = &AppointmentMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
		}
	})
	return appointmentMongoRepositoryInstance
}

func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	appointment.CreatedAt = time.Now().UTC()
	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return appointment, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByPatientEmail(ctx context.Context, patientEmail string) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{"patientEmail": patientEmail})
}

func (r *AppointmentMongoRepository) FindByDoctorEmail(ctx context.Context, doctorEmail string) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{"doctorEmail": doctorEmail})
}

func (r *AppointmentMongoRepository) FindByPatientAndTimeslot(ctx context.Context, patientEmail string, timeslot time.Time) (*models.Appointment, error) {
	var appointment models.Appointment
	filter := bson.M{"patientEmail": patientEmail, "timeslot": timeslot}
	err := r.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) UpdateTimeslot(ctx context.Context, appointmentID string, timeslot time.Time) error {
	update := bson.M{"$set": bson.M{"timeslot": timeslot}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": appointmentID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// DeleteByID reports whether a document was actually removed so callers can
// distinguish a cancel from a repeat of one.
func (r *AppointmentMongoRepository) DeleteByID(ctx context.Context, appointmentID string) (bool, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": appointmentID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount == 1, nil
}

func (r *AppointmentMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"timeslot": 1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
