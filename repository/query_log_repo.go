package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/askcse/deptbot-be/types"
)

type QueryLogRepo interface {
	Insert(ctx context.Context, entry *types.QueryLog) error
	Paginate(ctx context.Context, page, limit int64) ([]types.QueryLog, error)
}

type queryLogRepo struct {
	collection *mongo.Collection
}

func NewQueryLogRepo(collection *mongo.Collection) QueryLogRepo {
	return &queryLogRepo{
		collection: collection,
	}
}

func (r *queryLogRepo) Insert(ctx context.Context, entry *types.QueryLog) error {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// Paginate returns logs newest first. Page is 1-based.
func (r *queryLogRepo) Paginate(ctx context.Context, page, limit int64) ([]types.QueryLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []types.QueryLog
	for cursor.Next(ctx) {
		var entry types.QueryLog
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, cursor.Err()
}
