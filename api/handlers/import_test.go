package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api/handlers"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases/mocks"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

func TestImport_ImportHandler(t *testing.T) {
	rows := []models.ImportRow{
		{Plate: "RTB1234", Model: "Sprinter", InitialMileage: 100000, Timestamp: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), Cost: 275, Liters: 50, NewMileage: 100050},
		{Plate: "RTB1234", Model: "Sprinter", InitialMileage: 100000, Timestamp: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC), Cost: 4675, Liters: 850, NewMileage: 100900},
	}
	body, _ := json.Marshal(rows)
	req, err := http.NewRequest("POST", "/api/v1/import", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	vehicleDB := mocks.NewVehicleDatabase(t)
	entryDB := mocks.NewFuelEntryDatabase(t)
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	vehicleDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).Once()
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	entryDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	h := handlers.Import{Reconciler: fleet.NewReconciler(vehicleDB, entryDB)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.ImportHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var summary models.ImportSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.EntriesCreated)
	assert.Equal(t, 1, summary.VehiclesCreated)
	assert.Equal(t, 0, summary.RowsSkipped)
	assert.NotEmpty(t, summary.BatchID)
}

func TestImport_ImportHandlerEmptyBatch(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/import", bytes.NewBuffer([]byte("[]")))
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Import{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.ImportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestImport_ImportHandlerBadBody(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/import", bytes.NewBuffer([]byte("not json")))
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Import{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.ImportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
