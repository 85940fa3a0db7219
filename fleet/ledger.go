// Package fleet holds the mileage ledger, fuel entry validation, bulk
// import reconciliation and maintenance-due evaluation for the fleet.
// Handlers stay thin; every business rule about odometer history lives
// here.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
)

var (
	// ErrVehicleNotFound is returned when the referenced vehicle document does not exist
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrMileageConflict is returned when a concurrent writer advanced the
	// ledger between our read and our conditional write
	ErrMileageConflict = errors.New("vehicle mileage changed concurrently")
)

// Ledger is the authoritative access point for a vehicle's current odometer
// reading. Advance is the only way the reading moves, and it moves with an
// optimistic check so two concurrent submissions cannot both claim the same
// baseline.
type Ledger struct {
	Vehicles databases.VehicleDatabase
	Entries  databases.FuelEntryDatabase
}

// NewLedger wires a ledger over the vehicle and fuel entry collections
func NewLedger(vehicles databases.VehicleDatabase, entries databases.FuelEntryDatabase) *Ledger {
	return &Ledger{Vehicles: vehicles, Entries: entries}
}

// CurrentMileage returns the ledger reading stored on the vehicle document
func (l *Ledger) CurrentMileage(ctx context.Context, vehicleID primitive.ObjectID) (int, error) {
	vehicle, err := l.Vehicles.FindOne(ctx, bson.M{"_id": vehicleID})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrVehicleNotFound, err)
	}
	return vehicle.Details.CurrentMileage, nil
}

// CurrentOdometer returns the consolidated current odometer: the greater of
// the ledger reading and the highest mileage reported by any fuel entry.
// Accepted entries always advance the ledger so the two agree, except when
// an edit raised the most recent entry without touching the ledger; taking
// the max keeps the scheduler honest about that edit.
func (l *Ledger) CurrentOdometer(ctx context.Context, vehicleID primitive.ObjectID) (int, error) {
	current, err := l.CurrentMileage(ctx, vehicleID)
	if err != nil {
		return 0, err
	}

	limit := int64(1)
	entries, err := l.Entries.Find(ctx,
		bson.M{"fuelEntry.vehicleID": vehicleID},
		&options.FindOptions{
			Sort:  bson.D{{Key: "fuelEntry.newMileage", Value: -1}},
			Limit: &limit,
		})
	if err != nil {
		return 0, err
	}
	if len(entries) > 0 && entries[0].Details.NewMileage > current {
		current = entries[0].Details.NewMileage
	}
	return current, nil
}

// Advance moves the ledger from the previously observed reading to a new
// one. The write is conditional on the observed reading still being in
// place; a miss means another writer got there first.
func (l *Ledger) Advance(ctx context.Context, vehicleID primitive.ObjectID, from, to int) error {
	res, err := l.Vehicles.UpdateOne(ctx,
		bson.M{"_id": vehicleID, "vehicle.currentMileage": from},
		bson.M{"$set": bson.M{
			"vehicle.currentMileage": to,
			"vehicle.updatedAt":      primitive.NewDateTimeFromTime(time.Now()),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := l.Vehicles.CountDocuments(ctx, bson.M{"_id": vehicleID})
		if err == nil && count == 0 {
			return ErrVehicleNotFound
		}
		return ErrMileageConflict
	}
	return nil
}
