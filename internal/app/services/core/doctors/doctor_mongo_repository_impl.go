package doctors

import (
	"context"
	"sync"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	doctorMongoRepositoryInstance contracts.DoctorRepository
	onceDoctorMongoRepository     sync.Once
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) contracts.DoctorRepository {
	onceDoctorMongoRepository.Do(func() {
		doctorMongoRepositoryInstance = &DoctorMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
		}
	})
	return doctorMongoRepositoryInstance
}

func (r *DoctorMongoRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	err = cursor.All(ctx, &doctors)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (r *DoctorMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (r *DoctorMongoRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error) {
	doctor.CreatedAt = time.Now().UTC()
	doctor.UpdatedAt = doctor.CreatedAt
	result, err := r.Collection.InsertOne(ctx, doctor)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	doctor.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return doctor, nil
}

func (r *DoctorMongoRepository) SetTimeslots(ctx context.Context, email string, slots []time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"timeslots": slots,
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// ConsumeTimeslot removes the slot from the doctor's availability in one
// conditional update: the filter requires the slot to still be present, so
// concurrent consumers race on ModifiedCount and exactly one wins.
func (r *DoctorMongoRepository) ConsumeTimeslot(ctx context.Context, email string, slot time.Time) (bool, error) {
	filter := bson.M{"email": email, "timeslots": slot}
	update := bson.M{
		"$pull": bson.M{"timeslots": slot},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

// RestoreTimeslot puts a slot back after cancellation. $addToSet keeps the
// operation idempotent when a restore is retried.
func (r *DoctorMongoRepository) RestoreTimeslot(ctx context.Context, email string, slot time.Time) error {
	update := bson.M{
		"$addToSet": bson.M{"timeslots": slot},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
