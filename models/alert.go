package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ServiceAlert is the due/not-due verdict for one (vehicle, service) pair.
// It is computed on demand and never persisted.
type ServiceAlert struct {
	ServiceID     primitive.ObjectID `json:"serviceID"`
	ServiceName   string             `json:"serviceName"`
	Due           bool               `json:"due"`
	Justification string             `json:"justification"`
}
