package models

// FeatureName is the closed set of features the matcher computes.
type FeatureName string

const (
	// technical
	FeatureRequiredSkillOverlap  FeatureName = "required_skill_overlap"
	FeaturePreferredSkillOverlap FeatureName = "preferred_skill_overlap"
	FeatureRecentTechUsage       FeatureName = "recent_tech_usage"
	FeatureAvgCodeQuality        FeatureName = "avg_code_quality"
	FeatureRecentCodeQuality     FeatureName = "recent_code_quality"

	// experience
	FeatureSectorExperience  FeatureName = "sector_experience"
	FeatureSectorPerformance FeatureName = "sector_performance"
	FeatureRoleSprints       FeatureName = "role_sprints"
	FeatureAvgSprintScore    FeatureName = "avg_sprint_score"
	FeatureRecentSprintScore FeatureName = "recent_sprint_score"

	// activity
	FeatureRecentActivity  FeatureName = "recent_activity"
	FeatureCompletionRate  FeatureName = "completion_rate"
	FeatureSprintFrequency FeatureName = "sprint_frequency"
	FeatureResponseRate    FeatureName = "response_rate"

	// growth
	FeatureReputationGrowth  FeatureName = "reputation_growth"
	FeatureLearningRate      FeatureName = "learning_rate"
	FeatureRecentImprovement FeatureName = "recent_improvement"
	FeatureSkillAcquisition  FeatureName = "skill_acquisition"

	// collaboration
	FeatureAvgTeamScore        FeatureName = "avg_team_score"
	FeatureRecentTeamScore     FeatureName = "recent_team_score"
	FeatureLeadershipEmergence FeatureName = "leadership_emergence"
	FeatureCommunicationScore  FeatureName = "communication_score"
)

// AllFeatures lists every feature in a stable order. The audit mirror
// stores feature vectors in this order.
var AllFeatures = []FeatureName{
	FeatureRequiredSkillOverlap,
	FeaturePreferredSkillOverlap,
	FeatureRecentTechUsage,
	FeatureAvgCodeQuality,
	FeatureRecentCodeQuality,
	FeatureSectorExperience,
	FeatureSectorPerformance,
	FeatureRoleSprints,
	FeatureAvgSprintScore,
	FeatureRecentSprintScore,
	FeatureRecentActivity,
	FeatureCompletionRate,
	FeatureSprintFrequency,
	FeatureResponseRate,
	FeatureReputationGrowth,
	FeatureLearningRate,
	FeatureRecentImprovement,
	FeatureSkillAcquisition,
	FeatureAvgTeamScore,
	FeatureRecentTeamScore,
	FeatureLeadershipEmergence,
	FeatureCommunicationScore,
}

func (f FeatureName) Valid() bool {
	for _, n := range AllFeatures {
		if n == f {
			return true
		}
	}
	return false
}

// Features holds computed values. An absent key means the feature could not
// be computed for the candidate; Get reports it as 0.
type Features map[FeatureName]float64

func (f Features) Get(name FeatureName) float64 {
	if f == nil {
		return 0
	}
	return f[name]
}

func (f Features) Has(name FeatureName) bool {
	_, ok := f[name]
	return ok
}

// Coverage is the share of the catalogue present in f.
func (f Features) Coverage() float64 {
	if len(AllFeatures) == 0 {
		return 0
	}
	n := 0
	for _, name := range AllFeatures {
		if f.Has(name) {
			n++
		}
	}
	return float64(n) / float64(len(AllFeatures))
}

// Vector returns values in AllFeatures order, missing entries as 0.
func (f Features) Vector() []float32 {
	out := make([]float32, len(AllFeatures))
	for i, name := range AllFeatures {
		out[i] = float32(f.Get(name))
	}
	return out
}

// ToMap flattens to string keys for storage and responses.
func (f Features) ToMap() map[string]float64 {
	out := make(map[string]float64, len(f))
	for k, v := range f {
		out[string(k)] = v
	}
	return out
}
