package models

import "time"

type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
	SeniorityAny    Seniority = "any"
)

func (s Seniority) Valid() bool {
	switch s {
	case "", SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead, SeniorityAny:
		return true
	}
	return false
}

type RoleRequirements struct {
	Title       string    `json:"title" yaml:"title" binding:"required"`
	Seniority   Seniority `json:"seniority,omitempty" yaml:"seniority" binding:"omitempty,oneof=junior mid senior lead any"`
	MustHave    []string  `json:"must_have" yaml:"must_have"`
	NiceToHave  []string  `json:"nice_to_have,omitempty" yaml:"nice_to_have"`
	Culture     []string  `json:"culture,omitempty" yaml:"culture"`
	Sector      string    `json:"sector,omitempty" yaml:"sector"`
	Description string    `json:"description,omitempty" yaml:"description"`
	TeamSize    int       `json:"team_size,omitempty" yaml:"team_size" binding:"gte=0"`
	Remote      *bool     `json:"remote,omitempty" yaml:"remote"`
}

type MatchFilters struct {
	TimezoneOverlap string   `json:"timezone_overlap,omitempty" yaml:"timezone_overlap" binding:"omitempty,tzrange"` // "+03:00..+09:00"
	Remote          *bool    `json:"remote,omitempty" yaml:"remote"`
	MinReputation   *float64 `json:"min_reputation,omitempty" yaml:"min_reputation" binding:"omitempty,gte=0,lte=100"`
	RequiredSectors []string `json:"required_sectors,omitempty" yaml:"required_sectors"`
	MaxCandidates   int      `json:"max_candidates,omitempty" yaml:"max_candidates" binding:"gte=0"`
	IncludeBusy     bool     `json:"include_busy,omitempty" yaml:"include_busy"`
	RequireVerified bool     `json:"require_verified,omitempty" yaml:"require_verified"`
}

const DefaultMaxCandidates = 20

// AllowsRemote defaults to true when unset.
func (f *MatchFilters) AllowsRemote() bool {
	if f == nil || f.Remote == nil {
		return true
	}
	return *f.Remote
}

func (f *MatchFilters) Limit() int {
	if f == nil || f.MaxCandidates <= 0 {
		return DefaultMaxCandidates
	}
	return f.MaxCandidates
}

type MatchRequest struct {
	CompanyID string           `json:"company_id" yaml:"company_id" binding:"required"`
	Role      RoleRequirements `json:"role" yaml:"role"`
	Filters   *MatchFilters    `json:"filters,omitempty" yaml:"filters"`
	Count     int              `json:"count,omitempty" yaml:"count"`
	RequestID string           `json:"request_id,omitempty" yaml:"request_id"`
	CreatedAt time.Time        `json:"created_at,omitempty" yaml:"created_at"`
}

type CandidateScore struct {
	AnonID        string             `json:"anon_id"`
	Score         float64            `json:"score"`
	Reasons       []string           `json:"reasons"`
	FeatureScores map[string]float64 `json:"feature_scores,omitempty"`
	Rank          int                `json:"rank"`
	RevealAllowed bool               `json:"reveal_allowed"`
}

type MatchResponse struct {
	RequestID    string           `json:"request_id"`
	Results      []CandidateScore `json:"results"`
	ModelVersion string           `json:"model_version"`
	GeneratedAt  time.Time        `json:"generated_at"`
	NextToken    string           `json:"next_token,omitempty"`
}
