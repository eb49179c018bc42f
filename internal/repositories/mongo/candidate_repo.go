package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	"github.com/yoockh/orbitmatch/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CandidateRepository interface {
	GetByID(ctx context.Context, id string) (*models.CandidateMatchProfile, error)
	// FindPool returns up to limit candidates accepted by pc. The store query
	// narrows on indexed fields and pc re-checks every document.
	FindPool(ctx context.Context, pc *matching.PoolCriteria, limit int) ([]*models.CandidateMatchProfile, error)
	GetRevealedProfile(ctx context.Context, id string) (*models.RevealedProfile, error)
	AddBlockedCompany(ctx context.Context, candidateID, companyID string) error
	RemoveBlockedCompany(ctx context.Context, candidateID, companyID string) error
}

type candidateRepo struct {
	col *mongo.Collection
}

func NewCandidateRepo(db *mongo.Database) CandidateRepository {
	return &candidateRepo{col: db.Collection(CollCandidates)}
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*models.CandidateMatchProfile, error) {
	var c models.CandidateMatchProfile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PoolFilter is the store-side part of the pool criteria. Skills and
// timezones are left to PoolCriteria since they need normalization.
func PoolFilter(pc *matching.PoolCriteria) bson.M {
	f := bson.M{
		"availability_status": models.AvailabilityOpen,
		"anonymized_view":     true,
	}
	switch pc.Seniority {
	case "", models.SeniorityAny:
	case models.SeniorityJunior:
		f["$or"] = bson.A{
			bson.M{"orbit": models.OrbitCore},
			bson.M{"orbit": models.OrbitExperienced, "apply_as_junior": true},
		}
	default:
		f["orbit"] = models.OrbitExperienced
	}
	if pc.RequireRelocation {
		f["relocation_possible"] = true
	}
	if pc.MinReputation != nil {
		f["reputation_score"] = bson.M{"$gte": *pc.MinReputation}
	}
	if pc.RequireVerified {
		f["identity_verified"] = true
	}
	if pc.CompanyID != "" {
		f["blocked_companies"] = bson.M{"$ne": pc.CompanyID}
	}
	return f
}

func (r *candidateRepo) FindPool(ctx context.Context, pc *matching.PoolCriteria, limit int) ([]*models.CandidateMatchProfile, error) {
	cur, err := r.col.Find(ctx, PoolFilter(pc), options.Find().SetBatchSize(int32(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.CandidateMatchProfile, 0, limit)
	for len(out) < limit && cur.Next(ctx) {
		var c models.CandidateMatchProfile
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		if pc.Eligible(&c) {
			out = append(out, &c)
		}
	}
	return out, cur.Err()
}

func (r *candidateRepo) GetRevealedProfile(ctx context.Context, id string) (*models.RevealedProfile, error) {
	proj := bson.M{
		"name": 1, "email": 1, "location": 1, "timezone": 1, "skills": 1, "experience": 1,
		"bio": 1, "avatar_url": 1, "github_url": 1, "linkedin_url": 1,
	}
	var p models.RevealedProfile
	err := r.col.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(proj)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *candidateRepo) AddBlockedCompany(ctx context.Context, candidateID, companyID string) error {
	return r.updateBlocked(ctx, candidateID, bson.M{"$addToSet": bson.M{"blocked_companies": companyID}})
}

func (r *candidateRepo) RemoveBlockedCompany(ctx context.Context, candidateID, companyID string) error {
	return r.updateBlocked(ctx, candidateID, bson.M{"$pull": bson.M{"blocked_companies": companyID}})
}

func (r *candidateRepo) updateBlocked(ctx context.Context, candidateID string, update bson.M) error {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": candidateID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
