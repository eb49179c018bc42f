package models

import "time"

type GroupStat struct {
	Count int     `bson:"count" json:"count"`
	Mean  float64 `bson:"mean" json:"mean"`
	Std   float64 `bson:"std" json:"std"`
}

type FairnessMetrics struct {
	RequestID           string               `bson:"request_id" json:"request_id"`
	CompanyID           string               `bson:"company_id" json:"company_id"`
	Constraints         []string             `bson:"constraints" json:"constraints"`
	IgnoredConstraints  []string             `bson:"ignored_constraints,omitempty" json:"ignored_constraints,omitempty"`
	OriginalMean        float64              `bson:"original_mean" json:"original_mean"`
	AdjustedMean        float64              `bson:"adjusted_mean" json:"adjusted_mean"`
	AdjustmentMagnitude float64              `bson:"adjustment_magnitude" json:"adjustment_magnitude"`
	GroupStats          map[string]GroupStat `bson:"group_stats" json:"group_stats"`
	CreatedAt           time.Time            `bson:"created_at" json:"created_at"`
}
