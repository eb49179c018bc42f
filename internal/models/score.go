package models

// MatchScore is computed per (candidate, request) and embedded in the
// Recommendation that carries it.
type MatchScore struct {
	TechnicalFit float64 `bson:"technical_fit" json:"technical_fit"`
	RoleFit      float64 `bson:"role_fit" json:"role_fit"`
	SoftSkills   float64 `bson:"soft_skills" json:"soft_skills"`
	Growth       float64 `bson:"growth" json:"growth"`
	Availability float64 `bson:"availability" json:"availability"`
	Trust        float64 `bson:"trust" json:"trust"`
	FinalScore   float64 `bson:"final_score" json:"final_score"`

	FeatureValues     map[string]float64 `bson:"feature_values,omitempty" json:"feature_values,omitempty"`
	RankingReasons    []string           `bson:"ranking_reasons,omitempty" json:"ranking_reasons,omitempty"`
	AdjustmentFactors map[string]float64 `bson:"adjustment_factors,omitempty" json:"adjustment_factors,omitempty"`
}

// Clone deep-copies the maps and slices so fairness adjustments never leak
// into the caller's values.
func (s MatchScore) Clone() MatchScore {
	out := s
	if s.FeatureValues != nil {
		out.FeatureValues = make(map[string]float64, len(s.FeatureValues))
		for k, v := range s.FeatureValues {
			out.FeatureValues[k] = v
		}
	}
	if s.RankingReasons != nil {
		out.RankingReasons = append([]string(nil), s.RankingReasons...)
	}
	if s.AdjustmentFactors != nil {
		out.AdjustmentFactors = make(map[string]float64, len(s.AdjustmentFactors))
		for k, v := range s.AdjustmentFactors {
			out.AdjustmentFactors[k] = v
		}
	}
	return out
}

// Components returns the six component scores keyed by name.
func (s MatchScore) Components() map[string]float64 {
	return map[string]float64{
		"technical_fit": s.TechnicalFit,
		"role_fit":      s.RoleFit,
		"soft_skills":   s.SoftSkills,
		"growth":        s.Growth,
		"availability":  s.Availability,
		"trust":         s.Trust,
		"final_score":   s.FinalScore,
	}
}
