package databases

// go generate: mockery --name FeedbackDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reuniteapp/reunite-api/models"
)

const feedbackName = "feedbacks"

// FeedbackDatabase contains the methods to use with the feedback database
type FeedbackDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Feedback, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type feedbackDatabase struct {
	db DatabaseHelper
}

// NewFeedbackDatabase initializes a new instance of feedback database with the provided db connection
func NewFeedbackDatabase(db DatabaseHelper) FeedbackDatabase {
	return &feedbackDatabase{
		db: db,
	}
}

func (f *feedbackDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := f.db.Collection(feedbackName).Find(ctx, filter, opts...).Decode(&feedback)
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (f *feedbackDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return f.db.Collection(feedbackName).InsertOne(ctx, document, opts...)
}
