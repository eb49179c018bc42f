package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"github.com/yoockh/orbitmatch/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecommendationRepository interface {
	// InsertOnce writes rec unless (request_id, candidate_id) already exists.
	InsertOnce(ctx context.Context, rec *models.Recommendation) (inserted bool, err error)
	GetByID(ctx context.Context, id string) (*models.Recommendation, error)
	GetByRequestCandidate(ctx context.Context, requestID, candidateID string) (*models.Recommendation, error)
	// Transition moves id from one status to another. It fails with
	// utils.ErrNotFound when the recommendation is no longer in from.
	Transition(ctx context.Context, id string, from, to models.RecommendationStatus, set bson.M) error
	ListByCompany(ctx context.Context, companyID string, limit int64) ([]models.Recommendation, error)
	ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.Recommendation, error)
	// MarkOptedOut closes every open recommendation between the pair.
	MarkOptedOut(ctx context.Context, candidateID, companyID string) (int64, error)
}

type recommendationRepo struct {
	col *mongo.Collection
}

func NewRecommendationRepo(db *mongo.Database) RecommendationRepository {
	return &recommendationRepo{col: db.Collection(CollRecommendations)}
}

func (r *recommendationRepo) InsertOnce(ctx context.Context, rec *models.Recommendation) (bool, error) {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	return insertOnce(ctx, r.col, bson.M{"request_id": rec.RequestID, "candidate_id": rec.CandidateID}, rec)
}

func (r *recommendationRepo) GetByID(ctx context.Context, id string) (*models.Recommendation, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *recommendationRepo) GetByRequestCandidate(ctx context.Context, requestID, candidateID string) (*models.Recommendation, error) {
	return r.findOne(ctx, bson.M{"request_id": requestID, "candidate_id": candidateID})
}

func (r *recommendationRepo) findOne(ctx context.Context, filter bson.M) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.col.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepo) Transition(ctx context.Context, id string, from, to models.RecommendationStatus, set bson.M) error {
	fields := bson.M{"status": to, "updated_at": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *recommendationRepo) ListByCompany(ctx context.Context, companyID string, limit int64) ([]models.Recommendation, error) {
	return r.list(ctx, bson.M{"company_id": companyID}, limit)
}

func (r *recommendationRepo) ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.Recommendation, error) {
	return r.list(ctx, bson.M{"candidate_id": candidateID}, limit)
}

func (r *recommendationRepo) list(ctx context.Context, filter bson.M, limit int64) ([]models.Recommendation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "rank", Value: 1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recommendation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendationRepo) MarkOptedOut(ctx context.Context, candidateID, companyID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{
			"candidate_id": candidateID,
			"company_id":   companyID,
			"status":       bson.M{"$in": bson.A{models.StatusPending, models.StatusViewed}},
		},
		bson.M{"$set": bson.M{"status": models.StatusOptedOut, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// insertOnce upserts doc with $setOnInsert so an existing match for key is
// left untouched. A racing insert that loses on the unique index also
// reports inserted=false.
func insertOnce(ctx context.Context, col *mongo.Collection, key bson.M, doc any) (bool, error) {
	res, err := col.UpdateOne(ctx, key, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
