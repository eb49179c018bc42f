package models

import "time"

type CompanyMatchProfile struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`

	MustHaveSkills   []string `bson:"must_have_skills" json:"must_have_skills"`
	NiceToHaveSkills []string `bson:"nice_to_have_skills,omitempty" json:"nice_to_have_skills,omitempty"`
	CultureTags      []string `bson:"culture_tags,omitempty" json:"culture_tags,omitempty"`

	TimezoneRange   string   `bson:"timezone_range,omitempty" json:"timezone_range,omitempty"` // "+02:00..+05:00"
	SeniorityLevel  string   `bson:"seniority_level,omitempty" json:"seniority_level,omitempty"`
	RemoteOnly      bool     `bson:"remote_only" json:"remote_only"`
	RequiredSectors []string `bson:"required_sectors,omitempty" json:"required_sectors,omitempty"`

	MinReputationScore float64 `bson:"min_reputation_score" json:"min_reputation_score"`

	// protected attribute -> target value, ex: {"gender": "F"}
	DiversityTargets    map[string]string `bson:"diversity_targets,omitempty" json:"diversity_targets,omitempty"`
	FairnessConstraints []string          `bson:"fairness_constraints,omitempty" json:"fairness_constraints,omitempty"`

	FeedSize                int    `bson:"feed_size" json:"feed_size"`
	RequireIdentityVerified bool   `bson:"require_identity_verified" json:"require_identity_verified"`
	FeatureVersion          string `bson:"feature_version" json:"feature_version"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
