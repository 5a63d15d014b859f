package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicefinder/database"
	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl  *mongo.Collection
	serviceColl  *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		bookingColl:  db.Collection("bookings"),
		serviceColl:  db.Collection("services"),
		providerColl: db.Collection("providers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.bookingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "paymentStatus", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *MongoBookingRepo) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"paymentStatus": models.PaymentPending,
		"createdAt":     bson.M{"$lt": cutoff},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) AttachPaymentRef(ctx context.Context, id, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "paymentStatus": models.PaymentPending}
	update := bson.M{"$set": bson.M{"paymentRef": ref, "updatedAt": time.Now().UTC()}}
	res, err := r.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to attach payment ref to booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrConflict
	}
	return nil
}

func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from, to models.PaymentStatus) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("illegal booking transition %s -> %s", from, to)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.bookingColl.UpdateOne(ctx, transitionFilter(id, from), transitionUpdate(to, ""))
	if err != nil {
		return fmt.Errorf("failed to transition booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrConflict
	}
	return nil
}

func transitionFilter(id string, from models.PaymentStatus) bson.M {
	return bson.M{"id": id, "paymentStatus": from}
}

func transitionUpdate(to models.PaymentStatus, paymentRef string) bson.M {
	set := bson.M{"paymentStatus": to, "updatedAt": time.Now().UTC()}
	if paymentRef != "" {
		set["paymentRef"] = paymentRef
	}
	return bson.M{"$set": set}
}
