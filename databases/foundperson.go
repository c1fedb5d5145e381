package databases

// go generate: mockery --name FoundPersonDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reuniteapp/reunite-api/models"
)

const foundPersonName = "foundpeople"

// FoundPersonDatabase contains the methods to use with the found person database
type FoundPersonDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.FoundPerson, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.FoundPerson, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type foundPersonDatabase struct {
	db DatabaseHelper
}

// NewFoundPersonDatabase initializes a new instance of found person database with the provided db connection
func NewFoundPersonDatabase(db DatabaseHelper) FoundPersonDatabase {
	return &foundPersonDatabase{
		db: db,
	}
}

func (f *foundPersonDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.FoundPerson, error) {
	person := &models.FoundPerson{}
	err := f.db.Collection(foundPersonName).FindOne(ctx, filter, opts...).Decode(&person)
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (f *foundPersonDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.FoundPerson, error) {
	var people []models.FoundPerson
	err := f.db.Collection(foundPersonName).Find(ctx, filter, opts...).Decode(&people)
	if err != nil {
		return nil, err
	}
	return people, nil
}

func (f *foundPersonDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return f.db.Collection(foundPersonName).InsertOne(ctx, document, opts...)
}

func (f *foundPersonDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return f.db.Collection(foundPersonName).UpdateOne(ctx, filter, update, opts...)
}

func (f *foundPersonDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return f.db.Collection(foundPersonName).DeleteOne(ctx, filter, opts...)
}

func (f *foundPersonDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return f.db.Collection(foundPersonName).CountDocuments(ctx, filter, opts...)
}
