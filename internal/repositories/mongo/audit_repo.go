package mongo

import (
	"context"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	InsertOnce(ctx context.Context, a *models.MatchAudit) (inserted bool, err error)
	ListByRequest(ctx context.Context, requestID string) ([]models.MatchAudit, error)
}

type auditRepo struct {
	col *mongo.Collection
}

func NewAuditRepo(db *mongo.Database) AuditRepository {
	return &auditRepo{col: db.Collection(CollMatchAudit)}
}

func (r *auditRepo) InsertOnce(ctx context.Context, a *models.MatchAudit) (bool, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return insertOnce(ctx, r.col, bson.M{"request_id": a.RequestID, "candidate_id": a.CandidateID}, a)
}

func (r *auditRepo) ListByRequest(ctx context.Context, requestID string) ([]models.MatchAudit, error) {
	cur, err := r.col.Find(ctx, bson.M{"request_id": requestID}, options.Find().SetSort(bson.D{{Key: "rank", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MatchAudit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
