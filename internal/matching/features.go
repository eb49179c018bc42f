package matching

import (
	"math"
	"strings"
	"time"

	"github.com/yoockh/orbitmatch/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	HistoryWindow   = 180 * 24 * time.Hour
	HistoryMaxItems = 100

	activityHalfLifeDays = 30.0
)

// ActivityDecay is exp(-days/30).
func ActivityDecay(days int) float64 {
	return math.Exp(-float64(days) / activityHalfLifeDays)
}

// ComputeFeatures derives the feature map for one candidate. sprints must be
// ordered newest first, as returned by the sprint repository.
func ComputeFeatures(c *models.CandidateMatchProfile, role *models.RoleRequirements, sprints []models.Sprint, now time.Time) models.Features {
	f := models.Features{}
	technicalFeatures(f, c, role, sprints)
	experienceFeatures(f, role, sprints)
	activityFeatures(f, c, sprints, now)
	growthFeatures(f, c, sprints)
	collaborationFeatures(f, c, sprints)
	return f
}

func technicalFeatures(f models.Features, c *models.CandidateMatchProfile, role *models.RoleRequirements, sprints []models.Sprint) {
	have := NormalizeSkills(c.Skills)
	f[models.FeatureRequiredSkillOverlap] = Jaccard(have, NormalizeSkills(role.MustHave))
	f[models.FeaturePreferredSkillOverlap] = Jaccard(have, NormalizeSkills(role.NiceToHave))

	if len(sprints) == 0 {
		return
	}

	usage := map[string]float64{}
	for _, s := range sprints {
		for _, tech := range s.Technologies {
			usage[CanonicalSkill(tech)]++
		}
	}
	n := float64(len(sprints))
	roleTech := map[string]struct{}{}
	for _, t := range role.MustHave {
		roleTech[CanonicalSkill(t)] = struct{}{}
	}
	for _, t := range role.NiceToHave {
		roleTech[CanonicalSkill(t)] = struct{}{}
	}
	match := 0.0
	for t := range roleTech {
		match += usage[t] / n
	}
	f[models.FeatureRecentTechUsage] = math.Min(1, match)

	quality := make([]float64, len(sprints))
	for i, s := range sprints {
		quality[i] = s.CodeQualityScore
	}
	f[models.FeatureAvgCodeQuality] = stat.Mean(quality, nil)
	f[models.FeatureRecentCodeQuality] = quality[0]
}

func experienceFeatures(f models.Features, role *models.RoleRequirements, sprints []models.Sprint) {
	if len(sprints) == 0 {
		return
	}
	n := float64(len(sprints))

	if role.Sector != "" {
		var sectorScores []float64
		for _, s := range sprints {
			if s.Sector == role.Sector {
				sectorScores = append(sectorScores, s.OverallScore)
			}
		}
		f[models.FeatureSectorExperience] = float64(len(sectorScores)) / n
		if len(sectorScores) > 0 {
			f[models.FeatureSectorPerformance] = stat.Mean(sectorScores, nil)
		}
	}

	title := strings.ToLower(strings.TrimSpace(role.Title))
	matched := 0
	for _, s := range sprints {
		if title != "" && strings.Contains(strings.ToLower(s.Role), title) {
			matched++
		}
	}
	f[models.FeatureRoleSprints] = float64(matched) / n

	scores := overallScores(sprints)
	f[models.FeatureAvgSprintScore] = stat.Mean(scores, nil)
	f[models.FeatureRecentSprintScore] = scores[0]
}

func activityFeatures(f models.Features, c *models.CandidateMatchProfile, sprints []models.Sprint, now time.Time) {
	f[models.FeatureRecentActivity] = ActivityDecay(c.DaysSinceActive(now))
	f[models.FeatureResponseRate] = c.ResponseRate

	if len(sprints) == 0 {
		return
	}
	completed := 0
	for _, s := range sprints {
		if s.Status == models.SprintStatusCompleted {
			completed++
		}
	}
	f[models.FeatureCompletionRate] = float64(completed) / float64(len(sprints))

	if len(sprints) > 1 {
		intervals := make([]float64, 0, len(sprints)-1)
		for i := 0; i < len(sprints)-1; i++ {
			days := math.Floor(sprints[i].CompletedAt.Sub(sprints[i+1].CompletedAt).Hours() / 24)
			intervals = append(intervals, days)
		}
		// +1 keeps same-day sprints finite
		f[models.FeatureSprintFrequency] = 30 / (stat.Mean(intervals, nil) + 1)
	}
}

func growthFeatures(f models.Features, c *models.CandidateMatchProfile, sprints []models.Sprint) {
	f[models.FeatureReputationGrowth] = math.Max(0, c.GrowthSlope)

	if len(sprints) >= 3 {
		scores := overallScores(sprints)

		// regression runs oldest to newest so improvement is a positive slope
		n := len(scores)
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range scores {
			xs[i] = float64(i)
			ys[i] = scores[n-1-i]
		}
		_, slope := stat.LinearRegression(xs, ys, nil, false)
		f[models.FeatureLearningRate] = math.Max(0, slope)

		recent := stat.Mean(scores[:3], nil)
		past := stat.Mean(scores[n-3:], nil)
		if past > 0 {
			f[models.FeatureRecentImprovement] = math.Max(0, (recent-past)/past)
		}
	}

	if len(sprints) > 1 {
		initial := canonicalSet(sprints[len(sprints)-1].Technologies)
		current := canonicalSet(sprints[0].Technologies)
		added := 0
		for t := range current {
			if !initial.Has(t) {
				added++
			}
		}
		f[models.FeatureSkillAcquisition] = float64(added) / float64(max(1, len(initial)))
	}
}

func collaborationFeatures(f models.Features, c *models.CandidateMatchProfile, sprints []models.Sprint) {
	f[models.FeatureLeadershipEmergence] = c.LeadershipScore

	if len(sprints) == 0 {
		return
	}
	var team []float64
	comm := make([]float64, len(sprints))
	for i, s := range sprints {
		if s.TeamScore != nil && *s.TeamScore != 0 {
			team = append(team, *s.TeamScore)
		}
		comm[i] = s.CommunicationScore
	}
	if len(team) > 0 {
		f[models.FeatureAvgTeamScore] = stat.Mean(team, nil)
		f[models.FeatureRecentTeamScore] = team[0]
	}
	f[models.FeatureCommunicationScore] = stat.Mean(comm, nil)
}

func canonicalSet(techs []string) SkillSet {
	out := SkillSet{}
	for _, t := range techs {
		if c := CanonicalSkill(t); c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}

func overallScores(sprints []models.Sprint) []float64 {
	out := make([]float64, len(sprints))
	for i, s := range sprints {
		out[i] = s.OverallScore
	}
	return out
}
