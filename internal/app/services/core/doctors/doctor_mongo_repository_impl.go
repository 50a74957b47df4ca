package doctors

import (
	"context"
	"fmt"
	"time"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) CreateDoctor(ctx context.Context, doctorModel *models.Doctor) (doctorID string, err error) {
	doctorModel.CreatedAt = time.Now()
	doctorModel.UpdatedAt = doctorModel.CreatedAt
	if doctorModel.SlotsBooked == nil {
		doctorModel.SlotsBooked = map[string][]string{}
	}
	result, err := r.Collection.InsertOne(ctx, doctorModel)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *DoctorMongoRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (r *DoctorMongoRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
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

func (r *DoctorMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (r *DoctorMongoRepository) SetAvailability(ctx context.Context, doctorID string, available bool) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{"$set": bson.M{"available": available, "updatedAt": time.Now()}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// ReserveSlot wins or loses the slot in a single conditional update: the
// filter only matches when the doctor is available and the time is not yet in
// slots_booked for that date, so two concurrent bookings of the same tuple
// can never both match.
func (r *DoctorMongoRepository) ReserveSlot(ctx context.Context, doctorID, slotDate, slotTime string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	slotField := fmt.Sprintf("slots_booked.%s", slotDate)
	filter := bson.M{
		"_id":       objectID,
		"available": true,
		slotField:   bson.M{"$ne": slotTime},
	}
	update := bson.M{
		"$addToSet": bson.M{slotField: slotTime},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *DoctorMongoRepository) ReleaseSlot(ctx context.Context, doctorID, slotDate, slotTime string) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	slotField := fmt.Sprintf("slots_booked.%s", slotDate)
	update := bson.M{
		"$pull": bson.M{slotField: slotTime},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
