package fleet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases/mocks"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

func TestCostPerLiter(t *testing.T) {
	assert.InDelta(t, 5.5, fleet.CostPerLiter(1650, 300), 0.0001)
	assert.Equal(t, 0.0, fleet.CostPerLiter(1650, 0))
	assert.Equal(t, 0.0, fleet.CostPerLiter(1650, -3))
}

func TestEfficiency(t *testing.T) {
	assert.InDelta(t, 2.5, fleet.Efficiency(750, 300), 0.0001)
	assert.Equal(t, 0.0, fleet.Efficiency(750, 0))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 850, fleet.Distance(100050, 100900))
	assert.Equal(t, -50, fleet.Distance(100050, 100000))
}

func TestEntrySubmit(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	vehicleID := primitive.NewObjectID()
	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(&models.Vehicle{
		ID:      vehicleID,
		Details: models.VehicleDetails{Plate: "RTB1234", CurrentMileage: 100050},
	}, nil)
	vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var inserted models.FuelEntry
	entries.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(models.FuelEntry) }).
		Return(nil, nil)

	entry, err := svc.Submit(context.TODO(), vehicleID, fleet.EntryCandidate{
		Date:       time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		TotalCost:  4675,
		Liters:     850,
		NewMileage: 100900,
	})
	require.NoError(t, err)

	assert.Equal(t, 850, entry.Details.DistanceTravelled)
	assert.InDelta(t, 5.5, entry.Details.CostPerLiter, 0.0001)
	assert.Equal(t, vehicleID, inserted.Details.VehicleID)
	assert.Equal(t, 100900, inserted.Details.NewMileage)
}

func TestEntrySubmitRejectsReadingBehindLedger(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	vehicleID := primitive.NewObjectID()
	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(&models.Vehicle{
		ID:      vehicleID,
		Details: models.VehicleDetails{CurrentMileage: 100900},
	}, nil)

	_, err := svc.Submit(context.TODO(), vehicleID, fleet.EntryCandidate{
		TotalCost:  100,
		Liters:     20,
		NewMileage: 100050,
	})
	assert.ErrorIs(t, err, fleet.ErrNegativeDistance)

	// a rejected candidate must not touch the ledger or the entry store
	vehicles.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
	entries.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestEntrySubmitRejectsInvalidCandidate(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	_, err := svc.Submit(context.TODO(), primitive.NewObjectID(), fleet.EntryCandidate{
		TotalCost:  -10,
		Liters:     20,
		NewMileage: 100,
	})
	assert.ErrorIs(t, err, fleet.ErrInvalidCandidate)

	_, err = svc.Submit(context.TODO(), primitive.NewObjectID(), fleet.EntryCandidate{
		TotalCost:  10,
		NewMileage: -1,
	})
	assert.ErrorIs(t, err, fleet.ErrInvalidCandidate)
}

func TestEntrySubmitSurfacesMileageConflict(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	vehicleID := primitive.NewObjectID()
	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(&models.Vehicle{
		ID:      vehicleID,
		Details: models.VehicleDetails{CurrentMileage: 1000},
	}, nil)
	vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	vehicles.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := svc.Submit(context.TODO(), vehicleID, fleet.EntryCandidate{
		TotalCost:  100,
		Liters:     20,
		NewMileage: 1200,
	})
	assert.ErrorIs(t, err, fleet.ErrMileageConflict)
	entries.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

// Editing one entry re-derives its distance from its own original baseline,
// so entries recorded after it keep their attribution. Vehicle at 1000, entry
// A took it to 1200 (distance 200), entry B to 1500 (distance 300). Raising A
// to 1250 yields distance 250 and leaves B alone.
func TestEntryAmendUsesOriginalBaseline(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	vehicleID := primitive.NewObjectID()
	entryID := primitive.NewObjectID()
	entries.On("FindOne", mock.Anything, mock.Anything).Return(&models.FuelEntry{
		ID: entryID,
		Details: models.FuelEntryDetails{
			VehicleID:         vehicleID,
			TotalCost:         900,
			Liters:            100,
			NewMileage:        1200,
			DistanceTravelled: 200,
		},
	}, nil)
	entries.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	amended, err := svc.Amend(context.TODO(), entryID, fleet.EntryCandidate{
		Date:       time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		TotalCost:  900,
		Liters:     100,
		NewMileage: 1250,
	})
	require.NoError(t, err)

	assert.Equal(t, 250, amended.Details.DistanceTravelled)
	assert.Equal(t, 1250, amended.Details.NewMileage)

	// amending corrects history, it never extends the ledger
	vehicles.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryAmendRejectsReadingBehindBaseline(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	entryID := primitive.NewObjectID()
	entries.On("FindOne", mock.Anything, mock.Anything).Return(&models.FuelEntry{
		ID: entryID,
		Details: models.FuelEntryDetails{
			NewMileage:        1200,
			DistanceTravelled: 200,
		},
	}, nil)

	_, err := svc.Amend(context.TODO(), entryID, fleet.EntryCandidate{
		TotalCost:  900,
		Liters:     100,
		NewMileage: 950,
	})
	assert.ErrorIs(t, err, fleet.ErrNegativeDistance)
	entries.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryAmendMissingEntry(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	svc := fleet.NewEntryService(entries, fleet.NewLedger(vehicles, entries))

	entries.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	_, err := svc.Amend(context.TODO(), primitive.NewObjectID(), fleet.EntryCandidate{
		TotalCost:  10,
		Liters:     5,
		NewMileage: 100,
	})
	assert.ErrorIs(t, err, fleet.ErrEntryNotFound)
}
