package postgres

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/orbitmatch/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditLogRepository interface {
	// Mirror inserts the audit unless (request_id, candidate_id) is already present.
	Mirror(ctx context.Context, a *models.MatchAudit) error
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]models.MatchAuditLog, error)
	// Nearest returns the audits whose feature vectors are closest to v.
	Nearest(ctx context.Context, v []float32, limit int) ([]models.MatchAuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

// ToAuditLog converts the document audit into its relational row.
func ToAuditLog(a *models.MatchAudit) (*models.MatchAuditLog, error) {
	scores, err := json.Marshal(a.Scores)
	if err != nil {
		return nil, err
	}
	weights, err := json.Marshal(a.WeightsSnapshot)
	if err != nil {
		return nil, err
	}
	adjustments, err := json.Marshal(a.FairnessAdjustments)
	if err != nil {
		return nil, err
	}

	features := models.Features{}
	for k, v := range a.FeatureValues {
		if name := models.FeatureName(k); name.Valid() {
			features[name] = v
		}
	}

	return &models.MatchAuditLog{
		ID:                  a.ID,
		RecommendationID:    a.RecommendationID,
		CompanyID:           a.CompanyID,
		CandidateID:         a.CandidateID,
		RequestID:           a.RequestID,
		FinalScore:          a.Scores["final_score"],
		Rank:                a.Rank,
		RankingReasons:      append(pq.StringArray(nil), a.RankingReasons...),
		Scores:              datatypes.JSON(scores),
		WeightsSnapshot:     datatypes.JSON(weights),
		FairnessAdjustments: datatypes.JSON(adjustments),
		FeatureVector:       pgvector.NewVector(features.Vector()),
		ModelVersion:        a.ModelVersion,
		FeatureVersion:      a.FeatureVersion,
		CreatedAt:           a.CreatedAt,
	}, nil
}

func (r *auditLogRepo) Mirror(ctx context.Context, a *models.MatchAudit) error {
	row, err := ToAuditLog(a)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_id"}, {Name: "candidate_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *auditLogRepo) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]models.MatchAuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.MatchAuditLog
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *auditLogRepo) Nearest(ctx context.Context, v []float32, limit int) ([]models.MatchAuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.MatchAuditLog
	err := r.db.WithContext(ctx).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "feature_vector <-> ?", Vars: []any{pgvector.NewVector(v)}},
		}).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
