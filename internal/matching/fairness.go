package matching

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/yoockh/orbitmatch/internal/models"
	"gonum.org/v1/gonum/stat"
)

type ConstraintKind string

const (
	ConstraintMinUnderrepresented ConstraintKind = "min_underrepresented"
	ConstraintEqualOpportunity    ConstraintKind = "equal_opportunity"

	AdjustmentDiversityBoost   = "diversity_boost"
	AdjustmentEqualOpportunity = "equal_opportunity"
	maxDiversityBoost          = 0.2
	equalOpportunityCorrection = 0.5
	minUnderrepresentedPrefix  = "min_underrepresented_"
)

type Constraint struct {
	Kind ConstraintKind
	Pct  float64 // 0..1, only for min_underrepresented
	Raw  string
}

// ParseConstraint understands "equal_opportunity" and
// "min_underrepresented_<pct>" where pct is an integer in [0,100].
func ParseConstraint(raw string) (Constraint, error) {
	name := strings.TrimSpace(raw)
	switch {
	case name == string(ConstraintEqualOpportunity):
		return Constraint{Kind: ConstraintEqualOpportunity, Raw: raw}, nil
	case strings.HasPrefix(name, minUnderrepresentedPrefix):
		pct, err := strconv.Atoi(strings.TrimPrefix(name, minUnderrepresentedPrefix))
		if err != nil || pct < 0 || pct > 100 {
			return Constraint{}, fmt.Errorf("constraint %q: percentage must be an integer in [0,100]", raw)
		}
		return Constraint{Kind: ConstraintMinUnderrepresented, Pct: float64(pct) / 100, Raw: raw}, nil
	}
	return Constraint{}, fmt.Errorf("unknown fairness constraint %q", raw)
}

// ApplyConstraints runs the company's fairness constraints in declaration
// order. attrs holds the protected attributes of the candidate at the same
// index as scores. The input scores are not modified. Constraints that cannot
// be parsed are skipped and returned in ignored.
func ApplyConstraints(scores []models.MatchScore, attrs []map[string]string, company *models.CompanyMatchProfile) (adjusted []models.MatchScore, ignored []string) {
	adjusted = make([]models.MatchScore, len(scores))
	for i := range scores {
		adjusted[i] = scores[i].Clone()
	}
	if company == nil || len(company.FairnessConstraints) == 0 {
		return adjusted, nil
	}

	for _, raw := range company.FairnessConstraints {
		c, err := ParseConstraint(raw)
		if err != nil {
			ignored = append(ignored, raw)
			continue
		}
		switch c.Kind {
		case ConstraintMinUnderrepresented:
			applyRepresentation(adjusted, attrs, c.Pct, company.DiversityTargets)
		case ConstraintEqualOpportunity:
			applyEqualOpportunity(adjusted, attrs)
		}
	}
	return adjusted, ignored
}

func applyRepresentation(scores []models.MatchScore, attrs []map[string]string, pct float64, targets map[string]string) {
	total := len(scores)
	if total == 0 || len(targets) == 0 {
		return
	}
	targetCount := math.Floor(float64(total) * pct)
	share := targetCount / float64(total)

	for i := range scores {
		if !matchesTarget(attrAt(attrs, i), targets) {
			continue
		}
		boost := math.Min(maxDiversityBoost, share-scores[i].FinalScore)
		// A candidate already above the target share keeps its score. The
		// boost only ever raises a score, it never applies a penalty.
		if boost <= 0 {
			continue
		}
		before := scores[i].FinalScore
		scores[i].FinalScore = math.Min(1, before+boost)
		record(&scores[i], AdjustmentDiversityBoost, scores[i].FinalScore-before)
	}
}

func applyEqualOpportunity(scores []models.MatchScore, attrs []map[string]string) {
	if len(scores) < 2 {
		return
	}
	groups := map[string][]int{}
	for i := range scores {
		k := GroupKey(attrAt(attrs, i))
		groups[k] = append(groups[k], i)
	}
	if len(groups) < 2 {
		return
	}

	all := finals(scores)
	global := stat.Mean(all, nil)
	for _, idx := range groups {
		vals := make([]float64, len(idx))
		for j, i := range idx {
			vals[j] = all[i]
		}
		groupMean := stat.Mean(vals, nil)
		if groupMean == global {
			continue
		}
		delta := (global - groupMean) * equalOpportunityCorrection
		for _, i := range idx {
			before := scores[i].FinalScore
			scores[i].FinalScore = clamp01(before + delta)
			record(&scores[i], AdjustmentEqualOpportunity, scores[i].FinalScore-before)
		}
	}
}

// GroupKey is a stable key over the full protected-attribute tuple.
func GroupKey(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + attrs[k]
	}
	return strings.Join(parts, ",")
}

// GroupStats summarizes final scores per protected-attribute group.
// Candidates without attributes fall into "unknown".
func GroupStats(scores []models.MatchScore, attrs []map[string]string) map[string]models.GroupStat {
	byGroup := map[string][]float64{}
	for i, s := range scores {
		k := GroupKey(attrAt(attrs, i))
		if k == "" {
			k = "unknown"
		}
		byGroup[k] = append(byGroup[k], s.FinalScore)
	}
	out := make(map[string]models.GroupStat, len(byGroup))
	for k, vals := range byGroup {
		mean, std := stat.PopMeanStdDev(vals, nil)
		out[k] = models.GroupStat{Count: len(vals), Mean: mean, Std: std}
	}
	return out
}

// MeanFinal is 0 for an empty slice.
func MeanFinal(scores []models.MatchScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	return stat.Mean(finals(scores), nil)
}

// MeanAbsAdjustment compares final scores pairwise.
func MeanAbsAdjustment(before, after []models.MatchScore) float64 {
	n := min(len(before), len(after))
	if n == 0 {
		return 0
	}
	diffs := make([]float64, n)
	for i := 0; i < n; i++ {
		diffs[i] = math.Abs(after[i].FinalScore - before[i].FinalScore)
	}
	return stat.Mean(diffs, nil)
}

func matchesTarget(attrs map[string]string, targets map[string]string) bool {
	for k, v := range targets {
		if got, ok := attrs[k]; ok && got == v {
			return true
		}
	}
	return false
}

func record(s *models.MatchScore, name string, delta float64) {
	if s.AdjustmentFactors == nil {
		s.AdjustmentFactors = map[string]float64{}
	}
	s.AdjustmentFactors[name] += delta
}

func attrAt(attrs []map[string]string, i int) map[string]string {
	if i < len(attrs) {
		return attrs[i]
	}
	return nil
}

func finals(scores []models.MatchScore) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = s.FinalScore
	}
	return out
}
