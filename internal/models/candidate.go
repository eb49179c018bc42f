package models

import "time"

type Orbit string

const (
	OrbitCore        Orbit = "core"
	OrbitExperienced Orbit = "experienced"
)

type AvailabilityStatus string

const (
	AvailabilityOpen        AvailabilityStatus = "open"
	AvailabilityBusy        AvailabilityStatus = "busy"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// CandidateMatchProfile is the matching view of a candidate document.
// The matching core never writes it except for BlockedCompanies.
type CandidateMatchProfile struct {
	ID              string  `bson:"_id" json:"id"`
	Orbit           Orbit   `bson:"orbit" json:"orbit"`                       // core|experienced
	ReputationScore float64 `bson:"reputation_score" json:"reputation_score"` // 0..100

	Skills       []string       `bson:"skills" json:"skills"`
	SectorCounts map[string]int `bson:"sector_counts,omitempty" json:"sector_counts,omitempty"` // sector -> sprint count
	Timezone     string         `bson:"timezone" json:"timezone"`                               // "+03:00"

	LeadershipScore float64 `bson:"leadership_score" json:"leadership_score"`
	SoftSkillScore  float64 `bson:"soft_skill_score" json:"soft_skill_score"`
	ResponseRate    float64 `bson:"response_rate" json:"response_rate"`
	GrowthSlope     float64 `bson:"growth_slope" json:"growth_slope"`
	ActivityScore   float64 `bson:"activity_score" json:"activity_score"`
	AvgSprintScore  float64 `bson:"avg_sprint_score" json:"avg_sprint_score"`

	LastActive         time.Time          `bson:"last_active" json:"last_active"`
	AvailabilityStatus AvailabilityStatus `bson:"availability_status" json:"availability_status"`
	RemotePreference   bool               `bson:"remote_preference" json:"remote_preference"`
	RelocationPossible bool               `bson:"relocation_possible" json:"relocation_possible"`
	ApplyAsJunior      bool               `bson:"apply_as_junior" json:"apply_as_junior"`

	IdentityVerified   bool     `bson:"identity_verified" json:"identity_verified"`
	MentorEndorsements int      `bson:"mentor_endorsements" json:"mentor_endorsements"`
	CultureTags        []string `bson:"culture_tags,omitempty" json:"culture_tags,omitempty"`

	AnonymizedView   bool     `bson:"anonymized_view" json:"anonymized_view"`
	BlockedCompanies []string `bson:"blocked_companies,omitempty" json:"blocked_companies,omitempty"`

	FeatureVersion string    `bson:"feature_version" json:"feature_version"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

func (c *CandidateMatchProfile) HasBlocked(companyID string) bool {
	for _, b := range c.BlockedCompanies {
		if b == companyID {
			return true
		}
	}
	return false
}

// DaysSinceActive is floored to whole days and never negative.
func (c *CandidateMatchProfile) DaysSinceActive(now time.Time) int {
	if c.LastActive.IsZero() {
		return 0
	}
	d := int(now.Sub(c.LastActive).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
