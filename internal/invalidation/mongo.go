package invalidation

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSink appends events to a collection that renderers can tail.
type MongoSink struct {
	collection *mongo.Collection
}

// NewMongoSink writes to the view_invalidations collection of db.
func NewMongoSink(db *mongo.Database) *MongoSink {
	return &MongoSink{collection: db.Collection("view_invalidations")}
}

func (s *MongoSink) Name() string { return "mongo" }

func (s *MongoSink) Send(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, len(events))
	for i := range events {
		docs[i] = events[i]
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}
