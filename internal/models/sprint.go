package models

import "time"

// Sprint is a completed unit of work from the candidate's history.
type Sprint struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CandidateID string    `bson:"candidate_id" json:"candidate_id"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
	Status      string    `bson:"status" json:"status"` // completed|abandoned|...

	Technologies []string `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Sector       string   `bson:"sector,omitempty" json:"sector,omitempty"`
	Role         string   `bson:"role,omitempty" json:"role,omitempty"`

	CodeQualityScore   float64  `bson:"code_quality_score" json:"code_quality_score"`
	OverallScore       float64  `bson:"overall_score" json:"overall_score"`
	TeamScore          *float64 `bson:"team_score,omitempty" json:"team_score,omitempty"`
	CommunicationScore float64  `bson:"communication_score" json:"communication_score"`
}

const SprintStatusCompleted = "completed"
