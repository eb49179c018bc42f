package mongo

import (
	"context"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FairnessRepository interface {
	// ProtectedAttributes maps candidate id to its protected attributes.
	// Candidates without a record are absent from the result.
	ProtectedAttributes(ctx context.Context, candidateIDs []string) (map[string]map[string]string, error)
	InsertMetrics(ctx context.Context, m *models.FairnessMetrics) error
}

type fairnessRepo struct {
	attributes *mongo.Collection
	metrics    *mongo.Collection
}

func NewFairnessRepo(db *mongo.Database) FairnessRepository {
	return &fairnessRepo{
		attributes: db.Collection(CollCandidateAttributes),
		metrics:    db.Collection(CollFairnessMetrics),
	}
}

func (r *fairnessRepo) ProtectedAttributes(ctx context.Context, candidateIDs []string) (map[string]map[string]string, error) {
	out := map[string]map[string]string{}
	if len(candidateIDs) == 0 {
		return out, nil
	}
	cur, err := r.attributes.Find(ctx, bson.M{"candidate_id": bson.M{"$in": candidateIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc models.CandidateAttributes
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.CandidateID] = doc.ProtectedAttributes
	}
	return out, cur.Err()
}

func (r *fairnessRepo) InsertMetrics(ctx context.Context, m *models.FairnessMetrics) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.metrics.InsertOne(ctx, m)
	return err
}
