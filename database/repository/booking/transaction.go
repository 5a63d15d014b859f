package bookingRepo

import (
	"context"
	"fmt"

	"servicefinder/database"
	"servicefinder/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CommitReservation runs the confirmation writes in a single transaction:
//
//  1. pending -> completed on the booking (database.ErrConflict if it already moved)
//  2. compare-and-remove of the slot on the service (database.ErrSlotTaken if gone)
//  3. compare-and-remove of the slot on the provider aggregate (database.ErrSlotTaken
//     if another service of the provider already booked it)
//
// Any failure aborts all three.
func (r *MongoBookingRepo) CommitReservation(ctx context.Context, booking *models.Booking, paymentRef string) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.bookingColl.UpdateOne(sc,
			transitionFilter(booking.ID, models.PaymentPending),
			transitionUpdate(models.PaymentCompleted, paymentRef))
		if err != nil {
			return fmt.Errorf("complete booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return database.ErrConflict
		}

		remove := database.RemoveSlotPipeline(booking.Date, booking.Slot)
		res, err = r.serviceColl.UpdateOne(sc,
			database.SlotOpenFilter(booking.Service.ID, booking.Date, booking.Slot), remove)
		if err != nil {
			return fmt.Errorf("consume service slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return database.ErrSlotTaken
		}

		res, err = r.providerColl.UpdateOne(sc,
			database.SlotOpenFilter(booking.ProviderID, booking.Date, booking.Slot), remove)
		if err != nil {
			return fmt.Errorf("consume provider slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return database.ErrSlotTaken
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("reservation transaction failed: %w", err)
	}
	return nil
}
