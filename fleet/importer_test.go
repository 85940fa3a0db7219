package fleet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases/mocks"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// Rows arrive newest first; the batch must be replayed in timestamp order so
// the vehicle is created once and the distances chain correctly.
func TestImportBatchSortsByTimestamp(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	rec := fleet.NewReconciler(vehicles, entries)

	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	vehicles.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).Once()
	vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var created []models.FuelEntry
	entries.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(models.FuelEntry)) }).
		Return(nil, nil)

	t1 := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	rows := []models.ImportRow{
		{Plate: "RTB1234", Model: "Sprinter", InitialMileage: 100000, Timestamp: t2, Cost: 4675, Liters: 850, NewMileage: 100900},
		{Plate: "RTB1234", Model: "Sprinter", InitialMileage: 100000, Timestamp: t1, Cost: 275, Liters: 50, NewMileage: 100050},
	}

	summary, err := rec.ImportBatch(context.TODO(), rows)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EntriesCreated)
	assert.Equal(t, 1, summary.VehiclesCreated)
	assert.Equal(t, 0, summary.RowsSkipped)
	assert.NotEmpty(t, summary.BatchID)

	require.Len(t, created, 2)
	assert.Equal(t, t1, created[0].Details.Date)
	assert.Equal(t, 50, created[0].Details.DistanceTravelled)
	assert.Equal(t, t2, created[1].Details.Date)
	assert.Equal(t, 850, created[1].Details.DistanceTravelled)
	assert.Equal(t, summary.BatchID, created[0].Details.ImportBatchID)
}

func TestImportBatchSkipsRowBehindRunningMileage(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	rec := fleet.NewReconciler(vehicles, entries)

	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	vehicles.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).Once()
	vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var created []models.FuelEntry
	entries.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(models.FuelEntry)) }).
		Return(nil, nil)

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.ImportRow{
		{Plate: "KWX0001", InitialMileage: 5000, Timestamp: base, Cost: 200, Liters: 40, NewMileage: 5400},
		// typo'd reading behind the running mileage; must not sink the batch
		{Plate: "KWX0001", InitialMileage: 5000, Timestamp: base.Add(24 * time.Hour), Cost: 210, Liters: 42, NewMileage: 540},
		{Plate: "KWX0001", InitialMileage: 5000, Timestamp: base.Add(48 * time.Hour), Cost: 220, Liters: 44, NewMileage: 5900},
	}

	summary, err := rec.ImportBatch(context.TODO(), rows)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EntriesCreated)
	assert.Equal(t, 1, summary.RowsSkipped)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "KWX0001", summary.Skipped[0].Plate)
	assert.Contains(t, summary.Skipped[0].Reason, "behind running mileage")

	require.Len(t, created, 2)
	assert.Equal(t, 400, created[0].Details.DistanceTravelled)
	assert.Equal(t, 500, created[1].Details.DistanceTravelled)
}

func TestImportBatchReusesExistingVehicle(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	rec := fleet.NewReconciler(vehicles, entries)

	existing := models.Vehicle{
		Details: models.VehicleDetails{Plate: "RTB1234", CurrentMileage: 100900},
	}
	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(&existing, nil).Once()
	vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	entries.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	rows := []models.ImportRow{
		{Plate: "RTB1234", Timestamp: time.Now(), Cost: 300, Liters: 55, NewMileage: 101400},
	}

	summary, err := rec.ImportBatch(context.TODO(), rows)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.EntriesCreated)
	assert.Equal(t, 0, summary.VehiclesCreated)
	vehicles.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

// Spreadsheet rows may leave liters blank; the importer defaults them to 1
// so the derived cost-per-liter stays defined.
func TestImportBatchDefaultsMissingLiters(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	rec := fleet.NewReconciler(vehicles, entries)

	vehicles.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	vehicles.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).Once()
	vehicles.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	var created models.FuelEntry
	entries.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(models.FuelEntry) }).
		Return(nil, nil)

	rows := []models.ImportRow{
		{Plate: "JDM7777", InitialMileage: 0, Timestamp: time.Now(), Cost: 150, Liters: 0, NewMileage: 120},
	}

	_, err := rec.ImportBatch(context.TODO(), rows)
	require.NoError(t, err)

	assert.Equal(t, 1.0, created.Details.Liters)
	assert.Equal(t, 150.0, created.Details.CostPerLiter)
}

func TestImportBatchEmpty(t *testing.T) {
	vehicles := mocks.NewVehicleDatabase(t)
	entries := mocks.NewFuelEntryDatabase(t)
	rec := fleet.NewReconciler(vehicles, entries)

	summary, err := rec.ImportBatch(context.TODO(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.EntriesCreated)
	assert.Equal(t, 0, summary.VehiclesCreated)
	assert.NotEmpty(t, summary.BatchID)
}
