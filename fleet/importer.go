package fleet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// Reconciler replays a batch of historical fuel rows in chronological order,
// creating vehicles on first sight and advancing ledger state row by row
type Reconciler struct {
	Vehicles databases.VehicleDatabase
	Entries  databases.FuelEntryDatabase
}

// NewReconciler wires a reconciler over the vehicle and fuel entry collections
func NewReconciler(vehicles databases.VehicleDatabase, entries databases.FuelEntryDatabase) *Reconciler {
	return &Reconciler{Vehicles: vehicles, Entries: entries}
}

// batch-local view of one vehicle; mileage runs ahead of the persisted
// document while the batch is being replayed
type vehicleState struct {
	id      primitive.ObjectID
	mileage int
}

// ImportBatch sorts the whole batch by timestamp ascending, across vehicles,
// and replays it. Sorting globally rather than per plate keeps vehicle
// materialization and the resulting history in real chronological order when
// rows for several vehicles interleave.
//
// A row whose reading falls behind the running mileage for its vehicle is
// skipped, not fatal: one malformed historical row must not sink the rest of
// the batch. Every skip is counted and carried in the summary.
func (r *Reconciler) ImportBatch(ctx context.Context, rows []models.ImportRow) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{BatchID: uuid.New().String()}

	sorted := make([]models.ImportRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	vehicles := make(map[string]*vehicleState)

	for i, row := range sorted {
		state, err := r.resolveVehicle(ctx, row, vehicles, summary)
		if err != nil {
			return summary, err
		}

		liters := row.Liters
		if liters == 0 {
			// spreadsheet rows may omit liters entirely; default to 1 so the
			// derived cost-per-liter stays defined for this path
			liters = 1
		}

		distance := Distance(state.mileage, row.NewMileage)
		if distance < 0 {
			summary.RowsSkipped++
			summary.Skipped = append(summary.Skipped, models.SkippedRow{
				Index:  i,
				Plate:  row.Plate,
				Reason: fmt.Sprintf("reading %d is behind running mileage %d", row.NewMileage, state.mileage),
			})
			zap.S().Warnw("skipping import row",
				"batchID", summary.BatchID,
				"plate", row.Plate,
				"newMileage", row.NewMileage,
				"runningMileage", state.mileage,
			)
			continue
		}

		now := primitive.NewDateTimeFromTime(time.Now())
		entry := models.FuelEntry{
			ID: primitive.NewObjectID(),
			Details: models.FuelEntryDetails{
				VehicleID:         state.id,
				Date:              row.Timestamp,
				TotalCost:         row.Cost,
				Liters:            liters,
				CostPerLiter:      CostPerLiter(row.Cost, liters),
				NewMileage:        row.NewMileage,
				DistanceTravelled: distance,
				ImportBatchID:     summary.BatchID,
				CreatedAt:         now,
				UpdatedAt:         now,
			},
		}
		if _, err := r.Entries.InsertOne(ctx, entry); err != nil {
			return summary, fmt.Errorf("failed to persist imported entry for %s: %w", row.Plate, err)
		}

		if _, err := r.Vehicles.UpdateOne(ctx,
			bson.M{"_id": state.id},
			bson.M{"$set": bson.M{
				"vehicle.currentMileage": row.NewMileage,
				"vehicle.updatedAt":      now,
			}}); err != nil {
			return summary, fmt.Errorf("failed to advance mileage for %s: %w", row.Plate, err)
		}

		state.mileage = row.NewMileage
		summary.EntriesCreated++
	}

	zap.S().Infow("bulk import finished",
		"batchID", summary.BatchID,
		"entries", summary.EntriesCreated,
		"vehiclesCreated", summary.VehiclesCreated,
		"skipped", summary.RowsSkipped,
	)
	return summary, nil
}

// resolveVehicle finds the vehicle for a row's plate, first in the
// batch-local state, then in the store, and finally creates it from the
// row's descriptive columns with both mileage fields at the declared
// starting odometer.
func (r *Reconciler) resolveVehicle(ctx context.Context, row models.ImportRow, vehicles map[string]*vehicleState, summary *models.ImportSummary) (*vehicleState, error) {
	if state, ok := vehicles[row.Plate]; ok {
		return state, nil
	}

	existing, err := r.Vehicles.FindOne(ctx, bson.M{"vehicle.plate": row.Plate})
	if err == nil {
		state := &vehicleState{id: existing.ID, mileage: existing.Details.CurrentMileage}
		vehicles[row.Plate] = state
		return state, nil
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	vehicle := models.Vehicle{
		ID: primitive.NewObjectID(),
		Details: models.VehicleDetails{
			Plate:              row.Plate,
			Model:              row.Model,
			Driver:             row.Driver,
			Capacity:           row.Capacity,
			ExpectedEfficiency: row.ExpectedEfficiency,
			InitialMileage:     row.InitialMileage,
			CurrentMileage:     row.InitialMileage,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}
	if _, err := r.Vehicles.InsertOne(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle %s: %w", row.Plate, err)
	}
	summary.VehiclesCreated++

	state := &vehicleState{id: vehicle.ID, mileage: row.InitialMileage}
	vehicles[row.Plate] = state
	return state, nil
}
