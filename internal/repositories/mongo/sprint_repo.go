package mongo

import (
	"context"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SprintRepository interface {
	// Recent returns sprints completed since the cutoff, newest first.
	Recent(ctx context.Context, candidateID string, since time.Time, limit int64) ([]models.Sprint, error)
}

type sprintRepo struct {
	col *mongo.Collection
}

func NewSprintRepo(db *mongo.Database) SprintRepository {
	return &sprintRepo{col: db.Collection(CollSprints)}
}

func (r *sprintRepo) Recent(ctx context.Context, candidateID string, since time.Time, limit int64) ([]models.Sprint, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{
		"candidate_id": candidateID,
		"completed_at": bson.M{"$gte": since.UTC()},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Sprint
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
