package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/config"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// FuelEntry exported for testing purposes
type FuelEntry struct {
	DB      databases.FuelEntryDatabase
	Entries *fleet.EntryService
	Sheet   *SheetSink
}

// CreateFuelEntryHandler validates a fuel entry against the vehicle's ledger
// and persists it. Readings behind the ledger come back as 400; a lost
// optimistic race on the ledger comes back as 409 so the client can refetch
// the current mileage and retry.
func (f FuelEntry) CreateFuelEntryHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var candidate fleet.EntryCandidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	entry, err := f.Entries.Submit(r.Context(), vID, candidate)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrInvalidCandidate), errors.Is(err, fleet.ErrNegativeDistance):
			config.ErrorStatus("fuel entry rejected", http.StatusBadRequest, w, err)
		case errors.Is(err, fleet.ErrMileageConflict):
			config.ErrorStatus("vehicle mileage changed, refetch and retry", http.StatusConflict, w, err)
		case errors.Is(err, fleet.ErrVehicleNotFound):
			config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		default:
			config.ErrorStatus("failed to create fuel entry", http.StatusInternalServerError, w, err)
		}
		return
	}

	f.Sheet.SyncAsync("fuelEntry", entry)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// AmendFuelEntryHandler re-derives an existing entry from the edited values
func (f FuelEntry) AmendFuelEntryHandler(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entry_id"]

	eID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var candidate fleet.EntryCandidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	entry, err := f.Entries.Amend(r.Context(), eID, candidate)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrInvalidCandidate), errors.Is(err, fleet.ErrNegativeDistance):
			config.ErrorStatus("fuel entry rejected", http.StatusBadRequest, w, err)
		case errors.Is(err, fleet.ErrEntryNotFound):
			config.ErrorStatus("failed to get fuel entry by ID", http.StatusNotFound, w, err)
		default:
			config.ErrorStatus("failed to amend fuel entry", http.StatusInternalServerError, w, err)
		}
		return
	}

	f.Sheet.SyncAsync("fuelEntry", entry)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(entry)
}

// FuelEntryByIDHandler returns a fuel entry by ID
func (f FuelEntry) FuelEntryByIDHandler(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entry_id"]

	eID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := f.DB.FindOne(context.Background(), bson.M{"_id": eID})
	if err != nil {
		config.ErrorStatus("failed to get fuel entry by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// FuelEntriesByVehicleIDHandler returns all fuel entries for the given
// vehicle, newest first
func (f FuelEntry) FuelEntriesByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v", Limit|10))
	}
	limit64 := int64(Limit)
	Page = getPage(Page, r)
	skip64 := int64(Page * Limit)

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := f.DB.Find(context.TODO(), bson.M{
		"fuelEntry.vehicleID": vID,
	}, &options.FindOptions{
		Sort:  bson.D{{Key: "fuelEntry.date", Value: -1}},
		Limit: &limit64,
		Skip:  &skip64,
	})
	if err != nil {
		config.ErrorStatus("failed to get fuel entries by vehicle id", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.FuelEntry{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteFuelEntryHandler deletes a fuel entry by ID
func (f FuelEntry) DeleteFuelEntryHandler(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entry_id"]

	eID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = f.DB.DeleteOne(context.Background(), bson.M{"_id": eID})
	if err != nil {
		config.ErrorStatus("failed to delete fuel entry", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Fuel entry deleted successfully",
	})
}
