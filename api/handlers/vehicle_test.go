package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api/handlers"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases/mocks"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

func TestVehicle_VehicleByIDHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/vehicle/1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	req = mux.SetURLVars(req, map[string]string{"vehicle_id": "1234"})
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var client databases.ClientHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{} // can be used as db = &mocks.DatabaseHelper{}
	client = &mocks.ClientHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	client.(*mocks.ClientHelper).On("StartSession").Return(nil, errors.New("mocked-error"))
	db.(*MockDatabaseHelper).On("Client").Return(client)
	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "vehicles").Return(conn)

	vehicleDatabase := databases.NewVehicleDatabase(db)
	v := handlers.Vehicle{
		DB: vehicleDatabase,
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(v.VehicleByIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to get objectID from Hex", Error: "the provided hex string is not a valid ObjectID"}}
	b, _ := json.Marshal(expected)
	if rr.Body.String() != string(b) {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestVehicle_VehicleByIDHandlerSuccess(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+vehicleID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": vehicleID.Hex()})

	vehicleDB := mocks.NewVehicleDatabase(t)
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Vehicle{
		ID:      vehicleID,
		Details: models.VehicleDetails{Plate: "RTB1234", Model: "Sprinter", CurrentMileage: 100050},
	}, nil)

	v := handlers.Vehicle{DB: vehicleDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "RTB1234")
}

func TestVehicle_CreateVehicleHandler(t *testing.T) {
	body, _ := json.Marshal(models.VehicleDetails{
		Plate:          "RTB1234",
		Model:          "Sprinter",
		Driver:         "Ana",
		InitialMileage: 100000,
	})
	req, err := http.NewRequest("POST", "/api/v1/vehicle", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	vehicleDB := mocks.NewVehicleDatabase(t)
	var inserted models.Vehicle
	vehicleDB.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(models.Vehicle) }).
		Return(nil, nil)

	v := handlers.Vehicle{DB: vehicleDB, Sheet: &handlers.SheetSink{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	// ledger starts at the declared initial mileage
	assert.Equal(t, 100000, inserted.Details.CurrentMileage)
}

func TestVehicle_CreateVehicleHandlerMissingPlate(t *testing.T) {
	body, _ := json.Marshal(models.VehicleDetails{Model: "Sprinter"})
	req, err := http.NewRequest("POST", "/api/v1/vehicle", bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	vehicleDB := mocks.NewVehicleDatabase(t)
	v := handlers.Vehicle{DB: vehicleDB, Sheet: &handlers.SheetSink{}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	vehicleDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestVehicle_VehicleMileageHandler(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/vehicle/"+vehicleID.Hex()+"/mileage", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": vehicleID.Hex()})

	vehicleDB := mocks.NewVehicleDatabase(t)
	entryDB := mocks.NewFuelEntryDatabase(t)
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Vehicle{
		ID:      vehicleID,
		Details: models.VehicleDetails{CurrentMileage: 1200},
	}, nil)
	entryDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.FuelEntry{
		{Details: models.FuelEntryDetails{VehicleID: vehicleID, NewMileage: 1250}},
	}, nil)

	v := handlers.Vehicle{DB: vehicleDB, Ledger: fleet.NewLedger(vehicleDB, entryDB)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleMileageHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, float64(1250), resp["currentMileage"])
}
