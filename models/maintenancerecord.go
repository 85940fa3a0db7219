package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceRecord holds the structure for the maintenanceRecords
// collection in mongo
type MaintenanceRecord struct {
	ID      primitive.ObjectID       `json:"_id" bson:"_id"`
	Details MaintenanceRecordDetails `json:"maintenanceRecord" bson:"maintenanceRecord"`
	Version int32                    `json:"__v" bson:"__v"`
}

// MaintenanceRecordDetails holds the inner maintenance record structure.
// ServiceID is nil for ad-hoc work that has no catalog service; ServiceName
// carries the free-text name in that case.
type MaintenanceRecordDetails struct {
	VehicleID   primitive.ObjectID  `json:"vehicleID" bson:"vehicleID"`
	ServiceID   *primitive.ObjectID `json:"serviceID,omitempty" bson:"serviceID,omitempty"`
	ServiceName string              `json:"serviceName" bson:"serviceName"`
	Date        time.Time           `json:"date" bson:"date"`
	Mileage     int                 `json:"mileage" bson:"mileage"`
	Cost        float64             `json:"cost" bson:"cost"`
	CreatedAt   interface{}         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   interface{}         `json:"updatedAt" bson:"updatedAt"`
}
