package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeriodicityType is the recurrence model of a maintenance service
type PeriodicityType string

const (
	// PeriodicityDistance recurs every PeriodicityValue kilometers
	PeriodicityDistance PeriodicityType = "distance"
	// PeriodicityCalendar recurs every PeriodicityValue days
	PeriodicityCalendar PeriodicityType = "calendar"
)

// MaintenanceService holds the structure for the maintenanceServices
// collection in mongo
type MaintenanceService struct {
	ID      primitive.ObjectID        `json:"_id" bson:"_id"`
	Details MaintenanceServiceDetails `json:"maintenanceService" bson:"maintenanceService"`
	Version int32                     `json:"__v" bson:"__v"`
}

// MaintenanceServiceDetails holds the inner maintenance service structure
type MaintenanceServiceDetails struct {
	Name             string               `json:"name" bson:"name"`
	PeriodicityType  PeriodicityType      `json:"periodicityType" bson:"periodicityType"`
	PeriodicityValue int                  `json:"periodicityValue" bson:"periodicityValue"`
	VehicleIDs       []primitive.ObjectID `json:"vehicleIDs" bson:"vehicleIDs"`
	CreatedAt        interface{}          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        interface{}          `json:"updatedAt" bson:"updatedAt"`
}

// Validate enforces the service invariants before a write is attempted
func (d MaintenanceServiceDetails) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("maintenance service name is required")
	}
	if d.PeriodicityType != PeriodicityDistance && d.PeriodicityType != PeriodicityCalendar {
		return fmt.Errorf("invalid periodicity type %q", d.PeriodicityType)
	}
	if d.PeriodicityValue <= 0 {
		return fmt.Errorf("periodicity value must be positive, got %d", d.PeriodicityValue)
	}
	return nil
}

// AppliesTo reports whether the service covers the given vehicle
func (d MaintenanceServiceDetails) AppliesTo(vehicleID primitive.ObjectID) bool {
	for _, id := range d.VehicleIDs {
		if id == vehicleID {
			return true
		}
	}
	return false
}
