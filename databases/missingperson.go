package databases

// go generate: mockery --name MissingPersonDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reuniteapp/reunite-api/models"
)

const missingPersonName = "missingpeople"

// MissingPersonDatabase contains the methods to use with the missing person database
type MissingPersonDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.MissingPerson, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.MissingPerson, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type missingPersonDatabase struct {
	db DatabaseHelper
}

// NewMissingPersonDatabase initializes a new instance of missing person database with the provided db connection
func NewMissingPersonDatabase(db DatabaseHelper) MissingPersonDatabase {
	return &missingPersonDatabase{
		db: db,
	}
}

func (m *missingPersonDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MissingPerson, error) {
	person := &models.MissingPerson{}
	err := m.db.Collection(missingPersonName).FindOne(ctx, filter, opts...).Decode(&person)
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (m *missingPersonDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MissingPerson, error) {
	var people []models.MissingPerson
	err := m.db.Collection(missingPersonName).Find(ctx, filter, opts...).Decode(&people)
	if err != nil {
		return nil, err
	}
	return people, nil
}

func (m *missingPersonDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return m.db.Collection(missingPersonName).InsertOne(ctx, document, opts...)
}

func (m *missingPersonDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return m.db.Collection(missingPersonName).UpdateOne(ctx, filter, update, opts...)
}

func (m *missingPersonDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return m.db.Collection(missingPersonName).DeleteOne(ctx, filter, opts...)
}

func (m *missingPersonDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return m.db.Collection(missingPersonName).CountDocuments(ctx, filter, opts...)
}
