package mongo

import (
	"context"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository interface {
	Insert(ctx context.Context, e *models.MatchEvent) error
	ListByRecommendation(ctx context.Context, recommendationID string) ([]models.MatchEvent, error)
}

type eventRepo struct {
	col *mongo.Collection
}

func NewEventRepo(db *mongo.Database) EventRepository {
	return &eventRepo{col: db.Collection(CollMatchEvents)}
}

func (r *eventRepo) Insert(ctx context.Context, e *models.MatchEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *eventRepo) ListByRecommendation(ctx context.Context, recommendationID string) ([]models.MatchEvent, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"recommendation_id": recommendationID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MatchEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
