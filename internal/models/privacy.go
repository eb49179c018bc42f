package models

import "time"

// PrivacyRecord is a candidate's reveal decision for one company.
type PrivacyRecord struct {
	CandidateID string    `bson:"candidate_id" json:"candidate_id"`
	CompanyID   string    `bson:"company_id" json:"company_id"`
	OptedIn     bool      `bson:"opted_in" json:"opted_in"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

const (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
)

type Interview struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CandidateID string    `bson:"candidate_id" json:"candidate_id"`
	CompanyID   string    `bson:"company_id" json:"company_id"`
	Status      string    `bson:"status" json:"status"` // scheduled|completed|cancelled
	ScheduledAt time.Time `bson:"scheduled_at" json:"scheduled_at"`
}

// RevealedProfile is the allow-listed projection shown once reveal is allowed.
type RevealedProfile struct {
	ID          string           `bson:"_id" json:"id"`
	Name        string           `bson:"name,omitempty" json:"name,omitempty"`
	Email       string           `bson:"email,omitempty" json:"email,omitempty"`
	Location    string           `bson:"location,omitempty" json:"location,omitempty"`
	Timezone    string           `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Skills      []string         `bson:"skills,omitempty" json:"skills"`
	Experience  []map[string]any `bson:"experience,omitempty" json:"experience"`
	Bio         string           `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL   string           `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	GithubURL   string           `bson:"github_url,omitempty" json:"github_url,omitempty"`
	LinkedinURL string           `bson:"linkedin_url,omitempty" json:"linkedin_url,omitempty"`
}

// CandidateAttributes holds protected attributes used only by fairness checks.
type CandidateAttributes struct {
	CandidateID         string            `bson:"candidate_id" json:"candidate_id"`
	ProtectedAttributes map[string]string `bson:"protected_attributes" json:"protected_attributes"`
}
