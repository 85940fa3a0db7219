package databases

// go generate: mockery --name FuelEntryDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

const fuelEntryName = "fuelEntries"

// FuelEntryDatabase contains the methods to use with the fuel entry database
type FuelEntryDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.FuelEntry, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.FuelEntry, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type fuelEntryDatabase struct {
	db DatabaseHelper
}

// NewFuelEntryDatabase initializes a new instance of fuel entry database with the provided db connection
func NewFuelEntryDatabase(db DatabaseHelper) FuelEntryDatabase {
	return &fuelEntryDatabase{
		db: db,
	}
}

func (c *fuelEntryDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.FuelEntry, error) {
	entry := &models.FuelEntry{}
	err := c.db.Collection(fuelEntryName).FindOne(ctx, filter, opts...).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (c *fuelEntryDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FuelEntry, error) {
	var entries []models.FuelEntry
	cur, err := c.db.Collection(fuelEntryName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *fuelEntryDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(fuelEntryName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *fuelEntryDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(fuelEntryName).UpdateOne(ctx, filter, update, opts...)
}

func (c *fuelEntryDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(fuelEntryName).DeleteOne(ctx, filter, opts...)
}

func (c *fuelEntryDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(fuelEntryName).CountDocuments(ctx, filter, opts...)
}
