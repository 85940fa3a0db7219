package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelEntry holds the structure for the fuelEntries collection in mongo
type FuelEntry struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details FuelEntryDetails   `json:"fuelEntry" bson:"fuelEntry"`
	Version int32              `json:"__v" bson:"__v"`
}

// FuelEntryDetails holds the structure for the inner fuel entry structure.
//
// DistanceTravelled is derived at submission time from the ledger baseline
// and stored; it is never recomputed from later ledger state. An entry
// edited afterwards re-derives it against NewMileage-DistanceTravelled of
// the original record.
type FuelEntryDetails struct {
	VehicleID         primitive.ObjectID `json:"vehicleID" bson:"vehicleID"`
	Date              time.Time          `json:"date" bson:"date"`
	TotalCost         float64            `json:"totalCost" bson:"totalCost"`
	Liters            float64            `json:"liters" bson:"liters"`
	CostPerLiter      float64            `json:"costPerLiter" bson:"costPerLiter"`
	NewMileage        int                `json:"newMileage" bson:"newMileage"`
	DistanceTravelled int                `json:"distanceTravelled" bson:"distanceTravelled"`
	ImportBatchID     string             `json:"importBatchID,omitempty" bson:"importBatchID,omitempty"`
	EvidenceURL       string             `json:"evidenceURL,omitempty" bson:"evidenceURL,omitempty"`
	CreatedAt         interface{}        `json:"createdAt" bson:"createdAt"`
	UpdatedAt         interface{}        `json:"updatedAt" bson:"updatedAt"`
}
