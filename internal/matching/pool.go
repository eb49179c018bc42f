package matching

import (
	"fmt"

	"github.com/yoockh/orbitmatch/internal/models"
)

const PoolCap = 100

// PoolCriteria are the hard eligibility rules for one match request.
type PoolCriteria struct {
	CompanyID         string
	Seniority         models.Seniority
	Required          SkillSet
	RequireRelocation bool
	Timezone          *TimezoneRange
	MinReputation     *float64
	RequireVerified   bool
}

// NewPoolCriteria validates the request-derived parts of the criteria.
func NewPoolCriteria(req *models.MatchRequest) (*PoolCriteria, error) {
	if !req.Role.Seniority.Valid() {
		return nil, fmt.Errorf("unknown seniority %q", req.Role.Seniority)
	}
	pc := &PoolCriteria{
		CompanyID: req.CompanyID,
		Seniority: req.Role.Seniority,
		Required:  NormalizeSkills(req.Role.MustHave),
	}
	if f := req.Filters; f != nil {
		pc.RequireRelocation = !f.AllowsRemote()
		pc.MinReputation = f.MinReputation
		pc.RequireVerified = f.RequireVerified
		if f.TimezoneOverlap != "" {
			rng, err := ParseTimezoneRange(f.TimezoneOverlap)
			if err != nil {
				return nil, err
			}
			pc.Timezone = &rng
		}
	}
	return pc, nil
}

type poolRule struct {
	name string
	keep func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool
}

var poolRules = []poolRule{
	{"availability", func(_ *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return c.AvailabilityStatus == models.AvailabilityOpen && c.AnonymizedView
	}},
	{"seniority", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		switch pc.Seniority {
		case "", models.SeniorityAny:
			return true
		case models.SeniorityJunior:
			return c.Orbit == models.OrbitCore || (c.Orbit == models.OrbitExperienced && c.ApplyAsJunior)
		default:
			return c.Orbit == models.OrbitExperienced
		}
	}},
	{"skills", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return len(pc.Required) == 0 || IsSuperset(NormalizeSkills(c.Skills), pc.Required)
	}},
	{"relocation", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return !pc.RequireRelocation || c.RelocationPossible
	}},
	{"timezone", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return pc.Timezone == nil || pc.Timezone.InRange(c.Timezone)
	}},
	{"reputation", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return pc.MinReputation == nil || c.ReputationScore >= *pc.MinReputation
	}},
	{"verified", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return !pc.RequireVerified || c.IdentityVerified
	}},
	{"blocked", func(pc *PoolCriteria, c *models.CandidateMatchProfile) bool {
		return pc.CompanyID == "" || !c.HasBlocked(pc.CompanyID)
	}},
}

// Rejects returns the name of the first rule c fails, or "" if eligible.
func (pc *PoolCriteria) Rejects(c *models.CandidateMatchProfile) string {
	for _, r := range poolRules {
		if !r.keep(pc, c) {
			return r.name
		}
	}
	return ""
}

func (pc *PoolCriteria) Eligible(c *models.CandidateMatchProfile) bool {
	return pc.Rejects(c) == ""
}
