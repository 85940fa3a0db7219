package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vehicle holds the structure for the vehicle collection in mongo
type Vehicle struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details VehicleDetails     `json:"vehicle" bson:"vehicle"`
	Version int32              `json:"__v" bson:"__v"`
}

// VehicleDetails holds the structure for the inner vehicle structure as
// defined in the vehicle collection in mongo.
//
// CurrentMileage is the ledger reading for the vehicle. It only moves
// forward, and only as a side effect of an accepted fuel entry.
type VehicleDetails struct {
	Plate              string      `json:"plate" bson:"plate"`
	Model              string      `json:"model" bson:"model"`
	Driver             string      `json:"driver" bson:"driver"`
	Capacity           float64     `json:"capacity" bson:"capacity"`
	ExpectedEfficiency float64     `json:"expectedEfficiency" bson:"expectedEfficiency"`
	InitialMileage     int         `json:"initialMileage" bson:"initialMileage"`
	CurrentMileage     int         `json:"currentMileage" bson:"currentMileage"`
	DriverEmail        string      `json:"driverEmail" bson:"driverEmail"`
	CreatedAt          interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt          interface{} `json:"updatedAt" bson:"updatedAt"`
}
