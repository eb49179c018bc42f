package matching

import (
	"math"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
)

const (
	technicalFloor        = 0.4
	sectorAlignmentFloor  = 0.3
	sectorPenalty         = 0.8
	availabilityFloor     = 0.5
	remoteMismatchPenalty = 0.6
	timezonePenalty       = 0.7
	reasonThreshold       = 0.8
	cultureThreshold      = 0.7
	maxReasons            = 3
)

// Scorer turns features into a MatchScore using a fixed set of weights.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

// NewScorer validates w before accepting it.
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w, now: func() time.Time { return time.Now().UTC() }}, nil
}

// WithClock replaces the scorer's time source.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Scorer) Weights() Weights { return s.weights }

func (s *Scorer) ScoreCandidate(c *models.CandidateMatchProfile, f models.Features, role *models.RoleRequirements, company *models.CompanyMatchProfile) models.MatchScore {
	out := models.MatchScore{
		TechnicalFit:  technicalFit(c, f, role),
		RoleFit:       roleFit(f),
		SoftSkills:    softSkills(c),
		Growth:        growth(c, f),
		Availability:  availability(c, company, s.now()),
		Trust:         trust(c),
		FeatureValues: f.ToMap(),
	}

	w := s.weights
	final := w.Technical*out.TechnicalFit +
		w.RoleFit*out.RoleFit +
		w.SoftSkills*out.SoftSkills +
		w.Growth*out.Growth +
		w.Availability*out.Availability +
		w.Trust*out.Trust
	out.FinalScore = clamp01(final)
	out.RankingReasons = reasons(c, &out, role, company)
	return out
}

// ScoreBatch scores each candidate with the features at the same index. The
// result has the same length and order as candidates.
func (s *Scorer) ScoreBatch(candidates []*models.CandidateMatchProfile, features []models.Features, role *models.RoleRequirements, company *models.CompanyMatchProfile) []models.MatchScore {
	out := make([]models.MatchScore, len(candidates))
	for i, c := range candidates {
		var f models.Features
		if i < len(features) {
			f = features[i]
		}
		out[i] = s.ScoreCandidate(c, f, role, company)
	}
	return out
}

// SectorAlignment maps a sector sprint count onto [0,1): 2/(1+e^(-n/2)) - 1.
func SectorAlignment(n int) float64 {
	return 2/(1+math.Exp(-float64(n)/2)) - 1
}

func technicalFit(c *models.CandidateMatchProfile, f models.Features, role *models.RoleRequirements) float64 {
	req := f.Get(models.FeatureRequiredSkillOverlap)
	if req < technicalFloor {
		return 0
	}
	score := 0.7*req + 0.3*f.Get(models.FeaturePreferredSkillOverlap)
	score *= 0.7 + 0.3*math.Min(1, c.ReputationScore/100)

	if role.Sector != "" && SectorAlignment(c.SectorCounts[role.Sector]) < sectorAlignmentFloor {
		score *= sectorPenalty
	}
	return clamp01(score)
}

func roleFit(f models.Features) float64 {
	score := 0.8 * (0.7 + 0.3*f.Get(models.FeatureAvgSprintScore))
	if f.Get(models.FeatureRecentActivity) > 0.8 {
		score *= 1.1
	}
	return clamp01(score)
}

func softSkills(c *models.CandidateMatchProfile) float64 {
	score := c.SoftSkillScore * (0.7 + 0.3*c.ResponseRate)
	if c.LeadershipScore > 0.7 {
		score *= 1.1
	}
	return clamp01(score)
}

func growth(c *models.CandidateMatchProfile, f models.Features) float64 {
	score := math.Max(0, c.GrowthSlope)
	if f.Get(models.FeatureLearningRate) > 0.7 {
		score *= 1.2
	}
	if f.Get(models.FeatureRecentImprovement) > 0.8 {
		score *= 1.1
	}
	return clamp01(score)
}

func availability(c *models.CandidateMatchProfile, company *models.CompanyMatchProfile, now time.Time) float64 {
	if c.AvailabilityStatus != models.AvailabilityOpen {
		return 0
	}
	score := 1.0
	if company != nil {
		if company.RemoteOnly && !c.RemotePreference {
			score *= remoteMismatchPenalty
		}
		if company.TimezoneRange != "" {
			// a malformed company range carries no penalty
			if rng, err := ParseTimezoneRange(company.TimezoneRange); err == nil && !rng.InRange(c.Timezone) {
				score *= timezonePenalty
			}
		}
	}
	score *= ActivityDecay(c.DaysSinceActive(now))
	if score < availabilityFloor {
		return 0
	}
	return clamp01(score)
}

func trust(c *models.CandidateMatchProfile) float64 {
	score := 0.5
	if c.IdentityVerified {
		score += 0.3
	}
	score += 0.1 * float64(min(2, max(0, c.MentorEndorsements)))
	if c.ResponseRate > 0.8 {
		score += 0.1
	}
	return clamp01(score)
}

func reasons(c *models.CandidateMatchProfile, s *models.MatchScore, role *models.RoleRequirements, company *models.CompanyMatchProfile) []string {
	var out []string
	if s.TechnicalFit > reasonThreshold {
		out = append(out, "Strong technical match")
	}
	if s.RoleFit > reasonThreshold {
		out = append(out, "Great fit for "+role.Title)
	}
	if s.SoftSkills > reasonThreshold {
		out = append(out, "Excellent collaboration skills")
	}
	if s.Growth > reasonThreshold {
		out = append(out, "Strong growth trajectory")
	}
	if s.Availability > reasonThreshold {
		out = append(out, "Highly available")
	}
	if s.Trust > reasonThreshold {
		out = append(out, "Verified and reliable")
	}
	if role.Sector != "" && c.SectorCounts[role.Sector] > 2 {
		out = append(out, "Experience in "+role.Sector)
	}

	culture := role.Culture
	if company != nil && len(company.CultureTags) > 0 {
		culture = company.CultureTags
	}
	if CultureMatch(c.CultureTags, culture) > cultureThreshold {
		out = append(out, "Culture alignment")
	}

	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
