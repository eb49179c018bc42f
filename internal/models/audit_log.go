package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// MatchAuditLog is the relational mirror of MatchAudit kept for offline
// analysis. The feature vector follows AllFeatures order.
type MatchAuditLog struct {
	ID               string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RecommendationID string `gorm:"column:recommendation_id;type:text" json:"recommendation_id"`
	CompanyID        string `gorm:"column:company_id;type:text;index" json:"company_id"`
	CandidateID      string `gorm:"column:candidate_id;type:text;uniqueIndex:uniq_audit_request_candidate" json:"candidate_id"`
	RequestID        string `gorm:"column:request_id;type:text;uniqueIndex:uniq_audit_request_candidate" json:"request_id"`

	FinalScore float64 `gorm:"column:final_score" json:"final_score"`
	Rank       int     `gorm:"column:rank" json:"rank"`

	RankingReasons pq.StringArray `gorm:"column:ranking_reasons;type:text[]" json:"ranking_reasons"`

	// JSONB
	Scores              datatypes.JSON `gorm:"column:scores;type:jsonb" json:"scores"`
	WeightsSnapshot     datatypes.JSON `gorm:"column:weights_snapshot;type:jsonb" json:"weights_snapshot"`
	FairnessAdjustments datatypes.JSON `gorm:"column:fairness_adjustments;type:jsonb" json:"fairness_adjustments"`

	// pgvector
	FeatureVector pgvector.Vector `gorm:"column:feature_vector;type:vector(22)" json:"feature_vector"`

	ModelVersion   string    `gorm:"column:model_version;type:text" json:"model_version"`
	FeatureVersion string    `gorm:"column:feature_version;type:text" json:"feature_version"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (MatchAuditLog) TableName() string { return "match_audit_log" }
