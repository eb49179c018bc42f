package models

import (
	"fmt"
	"time"
)

// RecommendationStatus tracks a recommendation through the hiring funnel.
//
//	pending ──► viewed ──► invited ──► accepted ──► interviewing ──► hired
//	   │          │           │           │               │
//	   └──────────┴───────────┴───────────┴───────────────┴──► rejected
//
// pending and viewed may also move to opted_out when the candidate blocks the
// company. hired, rejected and opted_out are terminal.
type RecommendationStatus string

const (
	StatusPending      RecommendationStatus = "pending"
	StatusViewed       RecommendationStatus = "viewed"
	StatusInvited      RecommendationStatus = "invited"
	StatusAccepted     RecommendationStatus = "accepted"
	StatusRejected     RecommendationStatus = "rejected"
	StatusInterviewing RecommendationStatus = "interviewing"
	StatusHired        RecommendationStatus = "hired"
	StatusOptedOut     RecommendationStatus = "opted_out"
)

var validTransitions = map[RecommendationStatus][]RecommendationStatus{
	StatusPending:      {StatusViewed, StatusInvited, StatusRejected, StatusOptedOut},
	StatusViewed:       {StatusInvited, StatusRejected, StatusOptedOut},
	StatusInvited:      {StatusAccepted, StatusRejected},
	StatusAccepted:     {StatusInterviewing, StatusHired, StatusRejected},
	StatusInterviewing: {StatusHired, StatusRejected},
}

func ParseRecommendationStatus(s string) (RecommendationStatus, error) {
	st := RecommendationStatus(s)
	switch st {
	case StatusPending, StatusViewed, StatusInvited, StatusAccepted, StatusRejected,
		StatusInterviewing, StatusHired, StatusOptedOut:
		return st, nil
	}
	return "", fmt.Errorf("unknown recommendation status %q", s)
}

func IsTransitionAllowed(from, to RecommendationStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s RecommendationStatus) IsTerminal() bool {
	_, ok := validTransitions[s]
	return !ok
}

const RecommendationTTL = 7 * 24 * time.Hour

type Recommendation struct {
	ID          string `bson:"_id" json:"id"`
	RequestID   string `bson:"request_id" json:"request_id"`
	CompanyID   string `bson:"company_id" json:"company_id"`
	CandidateID string `bson:"candidate_id" json:"candidate_id"`
	RoleTitle   string `bson:"role_title,omitempty" json:"role_title,omitempty"`

	Scores     MatchScore `bson:"scores" json:"scores"`
	Rank       int        `bson:"rank" json:"rank"` // 1-based within request_id
	Confidence float64    `bson:"confidence" json:"confidence"`

	Status            RecommendationStatus `bson:"status" json:"status"`
	CompanyFeedback   string               `bson:"company_feedback,omitempty" json:"company_feedback,omitempty"`
	CandidateFeedback string               `bson:"candidate_feedback,omitempty" json:"candidate_feedback,omitempty"`

	AnonymizedHandle string `bson:"anonymized_handle" json:"anonymized_handle"`
	RevealAllowed    bool   `bson:"reveal_allowed" json:"reveal_allowed"`

	ModelVersion   string    `bson:"model_version" json:"model_version"`
	FeatureVersion string    `bson:"feature_version" json:"feature_version"`
	ExpiresAt      time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Expired reports logical expiry; recommendations are never deleted.
func (r *Recommendation) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}
