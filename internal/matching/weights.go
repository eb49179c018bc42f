package matching

import (
	"fmt"
	"math"
)

// Weights are the component weights of the final score. They must be
// non-negative and sum to 1.
type Weights struct {
	Technical    float64 `json:"technical" yaml:"technical"`
	RoleFit      float64 `json:"role_fit" yaml:"role_fit"`
	SoftSkills   float64 `json:"soft_skills" yaml:"soft_skills"`
	Growth       float64 `json:"growth" yaml:"growth"`
	Availability float64 `json:"availability" yaml:"availability"`
	Trust        float64 `json:"trust" yaml:"trust"`
}

func DefaultWeights() Weights {
	return Weights{
		Technical:    0.40,
		RoleFit:      0.15,
		SoftSkills:   0.15,
		Growth:       0.10,
		Availability: 0.10,
		Trust:        0.10,
	}
}

const weightSumTolerance = 1e-6

func (w Weights) Validate() error {
	sum := 0.0
	for name, v := range w.Snapshot() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", name, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

// Snapshot is the form stored with every audit record.
func (w Weights) Snapshot() map[string]float64 {
	return map[string]float64{
		"technical":    w.Technical,
		"role_fit":     w.RoleFit,
		"soft_skills":  w.SoftSkills,
		"growth":       w.Growth,
		"availability": w.Availability,
		"trust":        w.Trust,
	}
}
