package databases

// go generate: mockery --name MaintenanceRecordDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

const maintenanceRecordName = "maintenanceRecords"

// MaintenanceRecordDatabase contains the methods to use with the maintenance record database
type MaintenanceRecordDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.MaintenanceRecord, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.MaintenanceRecord, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type maintenanceRecordDatabase struct {
	db DatabaseHelper
}

// NewMaintenanceRecordDatabase initializes a new instance of maintenance record database with the provided db connection
func NewMaintenanceRecordDatabase(db DatabaseHelper) MaintenanceRecordDatabase {
	return &maintenanceRecordDatabase{
		db: db,
	}
}

func (c *maintenanceRecordDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MaintenanceRecord, error) {
	record := &models.MaintenanceRecord{}
	err := c.db.Collection(maintenanceRecordName).FindOne(ctx, filter, opts...).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *maintenanceRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	cur, err := c.db.Collection(maintenanceRecordName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *maintenanceRecordDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(maintenanceRecordName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *maintenanceRecordDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(maintenanceRecordName).UpdateOne(ctx, filter, update, opts...)
}

func (c *maintenanceRecordDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(maintenanceRecordName).DeleteOne(ctx, filter, opts...)
}
