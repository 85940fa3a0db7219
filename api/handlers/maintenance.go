package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/config"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// Maintenance exported for testing purposes
type Maintenance struct {
	Services  databases.MaintenanceServiceDatabase
	Records   databases.MaintenanceRecordDatabase
	Scheduler *fleet.Scheduler
	VDB       databases.VehicleDatabase
}

// CreateServiceHandler creates a maintenance service definition
func (m Maintenance) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var service models.MaintenanceService
	if err := json.NewDecoder(r.Body).Decode(&service.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := service.Details.Validate(); err != nil {
		config.ErrorStatus("invalid maintenance service", http.StatusBadRequest, w, err)
		return
	}

	service.ID = primitive.NewObjectID()
	service.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	service.Details.UpdatedAt = service.Details.CreatedAt

	_, err := m.Services.InsertOne(context.Background(), service)
	if err != nil {
		config.ErrorStatus("failed to create maintenance service", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Maintenance service created successfully",
		"id":      service.ID.Hex(),
	})
}

// ServicesHandler returns the whole maintenance service catalog
func (m Maintenance) ServicesHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := m.Services.Find(context.TODO(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get maintenance services", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.MaintenanceService{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ServiceByIDHandler returns a maintenance service by ID
func (m Maintenance) ServiceByIDHandler(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["service_id"]

	sID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := m.Services.FindOne(context.Background(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to get maintenance service by ID", http.StatusNotFound, w, err)
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

// UpdateServiceHandler updates a maintenance service definition
func (m Maintenance) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["service_id"]

	sID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var service models.MaintenanceService
	if err := json.NewDecoder(r.Body).Decode(&service.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := service.Details.Validate(); err != nil {
		config.ErrorStatus("invalid maintenance service", http.StatusBadRequest, w, err)
		return
	}

	service.Details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	_, err = m.Services.UpdateOne(context.Background(), bson.M{"_id": sID}, bson.M{"$set": bson.M{"maintenanceService": service.Details}})
	if err != nil {
		config.ErrorStatus("failed to update maintenance service", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Maintenance service updated successfully",
	})
}

// DeleteServiceHandler deletes a maintenance service by ID
func (m Maintenance) DeleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["service_id"]

	sID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = m.Services.DeleteOne(context.Background(), bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to delete maintenance service", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Maintenance service deleted successfully",
	})
}

// CreateRecordHandler records a performed maintenance
func (m Maintenance) CreateRecordHandler(w http.ResponseWriter, r *http.Request) {
	var record models.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&record.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	record.ID = primitive.NewObjectID()
	record.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	record.Details.UpdatedAt = record.Details.CreatedAt

	_, err := m.Records.InsertOne(context.Background(), record)
	if err != nil {
		config.ErrorStatus("failed to create maintenance record", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Maintenance record created successfully",
		"id":      record.ID.Hex(),
	})
}

// RecordsByVehicleIDHandler returns the maintenance history for a vehicle,
// newest first
func (m Maintenance) RecordsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := m.Records.Find(context.TODO(), bson.M{
		"maintenanceRecord.vehicleID": vID,
	}, &options.FindOptions{
		Sort: bson.D{{Key: "maintenanceRecord.date", Value: -1}},
	})
	if err != nil {
		config.ErrorStatus("failed to get maintenance records by vehicle id", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.MaintenanceRecord{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateRecordHandler updates a maintenance record
func (m Maintenance) UpdateRecordHandler(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["record_id"]

	rID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var record models.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&record.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	record.Details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	_, err = m.Records.UpdateOne(context.Background(), bson.M{"_id": rID}, bson.M{"$set": bson.M{"maintenanceRecord": record.Details}})
	if err != nil {
		config.ErrorStatus("failed to update maintenance record", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Maintenance record updated successfully",
	})
}

// DeleteRecordHandler deletes a maintenance record by ID
func (m Maintenance) DeleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	recordID := mux.Vars(r)["record_id"]

	rID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = m.Records.DeleteOne(context.Background(), bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to delete maintenance record", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Maintenance record deleted successfully",
	})
}

// VehicleAlertsHandler evaluates every applicable maintenance service for
// the vehicle and returns the full verdict list. Pass due_only=true to get
// just the services that are currently due.
func (m Maintenance) VehicleAlertsHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	alerts, err := m.Scheduler.DueServices(ctx, vID, time.Now())
	if err != nil {
		config.ErrorStatus("failed to evaluate maintenance alerts", http.StatusNotFound, w, err)
		return
	}

	if r.URL.Query().Get("due_only") == "true" {
		alerts = fleet.DueAlerts(alerts)
	}

	if len(alerts) == 0 {
		alerts = []models.ServiceAlert{}
	}
	b, err := json.Marshal(alerts)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
