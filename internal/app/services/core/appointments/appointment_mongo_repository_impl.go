package appointments

import (
	"context"
	"time"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointmentModel *models.Appointment) (appointmentID string, err error) {
	appointmentModel.CreatedAt = time.Now()
	appointmentModel.UpdatedAt = appointmentModel.CreatedAt
	result, err := r.Collection.InsertOne(ctx, appointmentModel)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"paymentDetail.orderId": orderID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *AppointmentMongoRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"docId": doctorID})
}

func (r *AppointmentMongoRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{})
}

// ListPendingPaidOrders returns appointments that hold a gateway order but
// never saw the payment flip, the reconciliation worker's sweep set.
func (r *AppointmentMongoRepository) ListPendingPaidOrders(ctx context.Context) ([]models.Appointment, error) {
	filter := bson.M{
		"payment":               false,
		"cancelled":             false,
		"paymentDetail.orderId": bson.M{"$exists": true, "$ne": ""},
	}
	return r.list(ctx, filter)
}

func (r *AppointmentMongoRepository) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) MarkCancelled(ctx context.Context, appointmentID string) error {
	return r.setFields(ctx, appointmentID, bson.M{"cancelled": true})
}

func (r *AppointmentMongoRepository) AttachPaymentOrder(ctx context.Context, appointmentID, orderID string) error {
	return r.setFields(ctx, appointmentID, bson.M{"paymentDetail.orderId": orderID})
}

// MarkPaid only matches while the payment flag is still down and the
// appointment is not cancelled, so concurrent verifies race for a single
// flip and every loser sees matched == 0.
func (r *AppointmentMongoRepository) MarkPaid(ctx context.Context, appointmentID string, detail *models.PaymentDetail) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":       objectID,
		"payment":   false,
		"cancelled": false,
	}
	update := bson.M{"$set": bson.M{
		"payment":       true,
		"paymentDetail": detail,
		"updatedAt":     time.Now(),
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *AppointmentMongoRepository) MarkCompleted(ctx context.Context, appointmentID string) error {
	return r.setFields(ctx, appointmentID, bson.M{"isCompleted": true})
}

func (r *AppointmentMongoRepository) SetMeetLink(ctx context.Context, appointmentID, meetLink string) error {
	return r.setFields(ctx, appointmentID, bson.M{"meetLink": meetLink})
}

func (r *AppointmentMongoRepository) SetInvoiceObject(ctx context.Context, appointmentID, objectName string) error {
	return r.setFields(ctx, appointmentID, bson.M{"invoiceObject": objectName})
}

func (r *AppointmentMongoRepository) MarkConfirmationSent(ctx context.Context, appointmentID string) error {
	return r.setFields(ctx, appointmentID, bson.M{"confirmationSent": true})
}

func (r *AppointmentMongoRepository) setFields(ctx context.Context, appointmentID string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	fields["updatedAt"] = time.Now()

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
