package databases

// go generate: mockery --name MaintenanceServiceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

const maintenanceServiceName = "maintenanceServices"

// MaintenanceServiceDatabase contains the methods to use with the maintenance service database
type MaintenanceServiceDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.MaintenanceService, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.MaintenanceService, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type maintenanceServiceDatabase struct {
	db DatabaseHelper
}

// NewMaintenanceServiceDatabase initializes a new instance of maintenance service database with the provided db connection
func NewMaintenanceServiceDatabase(db DatabaseHelper) MaintenanceServiceDatabase {
	return &maintenanceServiceDatabase{
		db: db,
	}
}

func (c *maintenanceServiceDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MaintenanceService, error) {
	service := &models.MaintenanceService{}
	err := c.db.Collection(maintenanceServiceName).FindOne(ctx, filter, opts...).Decode(&service)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (c *maintenanceServiceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MaintenanceService, error) {
	var services []models.MaintenanceService
	cur, err := c.db.Collection(maintenanceServiceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&services)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (c *maintenanceServiceDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(maintenanceServiceName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *maintenanceServiceDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(maintenanceServiceName).UpdateOne(ctx, filter, update, opts...)
}

func (c *maintenanceServiceDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(maintenanceServiceName).DeleteOne(ctx, filter, opts...)
}
