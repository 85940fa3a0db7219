package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api/handlers"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases/mocks"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

func TestMaintenance_CreateServiceHandler(t *testing.T) {
	body, _ := json.Marshal(models.MaintenanceServiceDetails{
		Name:             "Oil change",
		PeriodicityType:  models.PeriodicityDistance,
		PeriodicityValue: 10000,
	})
	req, err := http.NewRequest("POST", "/api/v1/maintenance-service", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	serviceDB := mocks.NewMaintenanceServiceDatabase(t)
	serviceDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	m := handlers.Maintenance{Services: serviceDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.CreateServiceHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestMaintenance_CreateServiceHandlerInvalidPeriodicity(t *testing.T) {
	body, _ := json.Marshal(models.MaintenanceServiceDetails{
		Name:             "Oil change",
		PeriodicityType:  "weekly",
		PeriodicityValue: 10000,
	})
	req, err := http.NewRequest("POST", "/api/v1/maintenance-service", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	serviceDB := mocks.NewMaintenanceServiceDatabase(t)
	m := handlers.Maintenance{Services: serviceDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.CreateServiceHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	serviceDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestMaintenance_CreateRecordHandler(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	body, _ := json.Marshal(models.MaintenanceRecordDetails{
		VehicleID:   vehicleID,
		ServiceName: "Oil change",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Mileage:     50000,
		Cost:        350,
	})
	req, err := http.NewRequest("POST", "/api/v1/maintenance-record", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	recordDB := mocks.NewMaintenanceRecordDatabase(t)
	recordDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	m := handlers.Maintenance{Records: recordDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.CreateRecordHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestMaintenance_VehicleAlertsHandler(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+vehicleID.Hex()+"/alerts", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": vehicleID.Hex()})

	vehicleDB := mocks.NewVehicleDatabase(t)
	entryDB := mocks.NewFuelEntryDatabase(t)
	serviceDB := mocks.NewMaintenanceServiceDatabase(t)
	recordDB := mocks.NewMaintenanceRecordDatabase(t)

	vehicleDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Vehicle{
		ID:      vehicleID,
		Details: models.VehicleDetails{Plate: "RTB1234", CurrentMileage: 61000},
	}, nil)
	entryDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.FuelEntry{}, nil)
	serviceDB.On("Find", mock.Anything, mock.Anything).Return([]models.MaintenanceService{
		{
			ID: primitive.NewObjectID(),
			Details: models.MaintenanceServiceDetails{
				Name:             "Oil change",
				PeriodicityType:  models.PeriodicityDistance,
				PeriodicityValue: 10000,
				VehicleIDs:       []primitive.ObjectID{vehicleID},
			},
		},
	}, nil)
	recordDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.MaintenanceRecord{
		{Details: models.MaintenanceRecordDetails{VehicleID: vehicleID, Mileage: 50000, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}, nil)

	ledger := fleet.NewLedger(vehicleDB, entryDB)
	m := handlers.Maintenance{
		Services:  serviceDB,
		Records:   recordDB,
		Scheduler: fleet.NewScheduler(serviceDB, recordDB, ledger),
		VDB:       vehicleDB,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.VehicleAlertsHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var alerts []models.ServiceAlert
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Due)
	assert.Equal(t, "last done at 50000 km", alerts[0].Justification)
}

func TestMaintenance_VehicleAlertsHandlerBadID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/vehicle/1234/alerts", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": "1234"})

	m := handlers.Maintenance{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(m.VehicleAlertsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
