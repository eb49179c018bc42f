package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PrivacyRepository interface {
	SetOptIn(ctx context.Context, candidateID, companyID string, optedIn bool) error
	IsOptedIn(ctx context.Context, candidateID, companyID string) (bool, error)
	// HasActiveInterview is true for scheduled or completed interviews.
	HasActiveInterview(ctx context.Context, candidateID, companyID string) (bool, error)
	RevealsByCompany(ctx context.Context, companyID string) ([]models.PrivacyRecord, error)
	RevealsByCandidate(ctx context.Context, candidateID string) ([]models.PrivacyRecord, error)
}

type privacyRepo struct {
	privacy    *mongo.Collection
	interviews *mongo.Collection
}

func NewPrivacyRepo(db *mongo.Database) PrivacyRepository {
	return &privacyRepo{
		privacy:    db.Collection(CollCandidatePrivacy),
		interviews: db.Collection(CollInterviews),
	}
}

func (r *privacyRepo) SetOptIn(ctx context.Context, candidateID, companyID string, optedIn bool) error {
	now := time.Now().UTC()
	_, err := r.privacy.UpdateOne(ctx,
		bson.M{"candidate_id": candidateID, "company_id": companyID},
		bson.M{
			"$set":         bson.M{"opted_in": optedIn, "updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *privacyRepo) IsOptedIn(ctx context.Context, candidateID, companyID string) (bool, error) {
	return exists(ctx, r.privacy, bson.M{"candidate_id": candidateID, "company_id": companyID, "opted_in": true})
}

func (r *privacyRepo) HasActiveInterview(ctx context.Context, candidateID, companyID string) (bool, error) {
	return exists(ctx, r.interviews, bson.M{
		"candidate_id": candidateID,
		"company_id":   companyID,
		"status":       bson.M{"$in": bson.A{models.InterviewScheduled, models.InterviewCompleted}},
	})
}

func (r *privacyRepo) RevealsByCompany(ctx context.Context, companyID string) ([]models.PrivacyRecord, error) {
	return r.reveals(ctx, bson.M{"company_id": companyID, "opted_in": true})
}

func (r *privacyRepo) RevealsByCandidate(ctx context.Context, candidateID string) ([]models.PrivacyRecord, error) {
	return r.reveals(ctx, bson.M{"candidate_id": candidateID, "opted_in": true})
}

func (r *privacyRepo) reveals(ctx context.Context, filter bson.M) ([]models.PrivacyRecord, error) {
	cur, err := r.privacy.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PrivacyRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func exists(ctx context.Context, col *mongo.Collection, filter bson.M) (bool, error) {
	err := col.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
