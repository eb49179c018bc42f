package matching

import (
	"testing"

	"github.com/yoockh/orbitmatch/internal/models"
)

func scoresOf(vals ...float64) []models.MatchScore {
	out := make([]models.MatchScore, len(vals))
	for i, v := range vals {
		out[i] = models.MatchScore{FinalScore: v}
	}
	return out
}

func TestParseConstraint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		kind    ConstraintKind
		pct     float64
		wantErr bool
	}{
		{"equal_opportunity", ConstraintEqualOpportunity, 0, false},
		{"min_underrepresented_20", ConstraintMinUnderrepresented, 0.2, false},
		{"min_underrepresented_0", ConstraintMinUnderrepresented, 0, false},
		{"min_underrepresented_100", ConstraintMinUnderrepresented, 1, false},
		{"min_underrepresented_", "", 0, true},
		{"min_underrepresented_abc", "", 0, true},
		{"min_underrepresented_150", "", 0, true},
		{"demographic_parity", "", 0, true},
		{"", "", 0, true},
	}
	for _, tc := range cases {
		c, err := ParseConstraint(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseConstraint(%q) err = %v, wantErr %v", tc.raw, err, tc.wantErr)
			continue
		}
		if tc.wantErr {
			continue
		}
		if c.Kind != tc.kind || !almostEqual(c.Pct, tc.pct) {
			t.Errorf("ParseConstraint(%q) = %+v, want kind %s pct %v", tc.raw, c, tc.kind, tc.pct)
		}
	}
}

func TestApplyConstraints_NoConstraintsIsNoop(t *testing.T) {
	t.Parallel()

	in := scoresOf(0.9, 0.1)
	out, ignored := ApplyConstraints(in, nil, &models.CompanyMatchProfile{})
	if len(ignored) != 0 {
		t.Errorf("ignored = %v, want none", ignored)
	}
	for i := range in {
		if out[i].FinalScore != in[i].FinalScore || len(out[i].AdjustmentFactors) != 0 {
			t.Errorf("score %d changed: %+v", i, out[i])
		}
	}
}

func TestEqualOpportunity(t *testing.T) {
	t.Parallel()

	company := &models.CompanyMatchProfile{FairnessConstraints: []string{"equal_opportunity"}}

	t.Run("single group is a no-op", func(t *testing.T) {
		t.Parallel()
		attrs := []map[string]string{{"gender": "F"}, {"gender": "F"}, {"gender": "F"}}
		out, _ := ApplyConstraints(scoresOf(0.9, 0.5, 0.1), attrs, company)
		for i, want := range []float64{0.9, 0.5, 0.1} {
			if out[i].FinalScore != want || out[i].AdjustmentFactors != nil {
				t.Errorf("score %d = %+v, want unchanged %v", i, out[i], want)
			}
		}
	})

	t.Run("fewer than two candidates is a no-op", func(t *testing.T) {
		t.Parallel()
		out, _ := ApplyConstraints(scoresOf(0.4), []map[string]string{{"gender": "M"}}, company)
		if out[0].FinalScore != 0.4 || out[0].AdjustmentFactors != nil {
			t.Errorf("score = %+v, want unchanged", out[0])
		}
	})

	t.Run("groups move halfway toward the global mean", func(t *testing.T) {
		t.Parallel()
		attrs := []map[string]string{{"gender": "M"}, {"gender": "F"}}
		out, _ := ApplyConstraints(scoresOf(0.8, 0.6), attrs, company)
		if !almostEqual(out[0].FinalScore, 0.75) || !almostEqual(out[1].FinalScore, 0.65) {
			t.Fatalf("scores = %v, %v; want 0.75, 0.65", out[0].FinalScore, out[1].FinalScore)
		}
		if !almostEqual(out[0].AdjustmentFactors[AdjustmentEqualOpportunity], -0.05) {
			t.Errorf("M delta = %v, want -0.05", out[0].AdjustmentFactors[AdjustmentEqualOpportunity])
		}
		if !almostEqual(out[1].AdjustmentFactors[AdjustmentEqualOpportunity], 0.05) {
			t.Errorf("F delta = %v, want 0.05", out[1].AdjustmentFactors[AdjustmentEqualOpportunity])
		}
	})

	t.Run("full attribute tuple defines the group", func(t *testing.T) {
		t.Parallel()
		attrs := []map[string]string{
			{"gender": "F", "age": "30-39"},
			{"age": "30-39", "gender": "F"},
		}
		out, _ := ApplyConstraints(scoresOf(0.9, 0.3), attrs, company)
		if out[0].FinalScore != 0.9 || out[1].FinalScore != 0.3 {
			t.Errorf("same tuple in different key order must form one group: %+v", out)
		}
	})
}

func TestMinUnderrepresented(t *testing.T) {
	t.Parallel()

	company := &models.CompanyMatchProfile{
		FairnessConstraints: []string{"min_underrepresented_20"},
		DiversityTargets:    map[string]string{"gender": "F"},
	}
	attrs := []map[string]string{
		{"gender": "M"}, {"gender": "M"}, {"gender": "M"}, {"gender": "F"}, {"gender": "F"},
	}
	in := scoresOf(0.9, 0.8, 0.7, 0.5, 0.05)

	out, ignored := ApplyConstraints(in, attrs, company)
	if len(ignored) != 0 {
		t.Fatalf("ignored = %v", ignored)
	}

	// target share is floor(5*0.2)/5 = 0.2
	boosted := out[4]
	boost := boosted.AdjustmentFactors[AdjustmentDiversityBoost]
	if boost <= 0 || boost > 0.2 {
		t.Fatalf("diversity_boost = %v, want in (0, 0.2]", boost)
	}
	if !almostEqual(boosted.FinalScore, 0.2) {
		t.Errorf("boosted final = %v, want 0.2", boosted.FinalScore)
	}

	// already above the target share: untouched
	if out[3].FinalScore != 0.5 || out[3].AdjustmentFactors != nil {
		t.Errorf("F candidate above target changed: %+v", out[3])
	}
	for i := 0; i < 3; i++ {
		if out[i].AdjustmentFactors != nil {
			t.Errorf("non-target candidate %d adjusted: %+v", i, out[i])
		}
	}

	// inputs are not mutated
	if in[4].FinalScore != 0.05 || in[4].AdjustmentFactors != nil {
		t.Errorf("input mutated: %+v", in[4])
	}
}

func TestMinUnderrepresented_BoostIsCapped(t *testing.T) {
	t.Parallel()

	company := &models.CompanyMatchProfile{
		FairnessConstraints: []string{"min_underrepresented_100"},
		DiversityTargets:    map[string]string{"gender": "F"},
	}
	out, _ := ApplyConstraints(scoresOf(0.1), []map[string]string{{"gender": "F"}}, company)
	if !almostEqual(out[0].FinalScore, 0.3) {
		t.Errorf("final = %v, want 0.3 (boost capped at 0.2)", out[0].FinalScore)
	}
}

func TestApplyConstraints_UnknownNamesReported(t *testing.T) {
	t.Parallel()

	company := &models.CompanyMatchProfile{
		FairnessConstraints: []string{"demographic_parity", "equal_opportunity", "min_underrepresented_x"},
	}
	attrs := []map[string]string{{"g": "a"}, {"g": "b"}}
	out, ignored := ApplyConstraints(scoresOf(1, 0), attrs, company)

	if len(ignored) != 2 || ignored[0] != "demographic_parity" || ignored[1] != "min_underrepresented_x" {
		t.Errorf("ignored = %v", ignored)
	}
	if out[0].FinalScore != 0.75 || out[1].FinalScore != 0.25 {
		t.Errorf("known constraint still applies: %v %v", out[0].FinalScore, out[1].FinalScore)
	}
}

func TestGroupStats(t *testing.T) {
	t.Parallel()

	attrs := []map[string]string{{"gender": "F"}, {"gender": "F"}, nil}
	stats := GroupStats(scoresOf(0.2, 0.6, 0.5), attrs)

	f := stats["gender=F"]
	if f.Count != 2 || !almostEqual(f.Mean, 0.4) || !almostEqual(f.Std, 0.2) {
		t.Errorf("gender=F stats = %+v", f)
	}
	if u := stats["unknown"]; u.Count != 1 || u.Std != 0 {
		t.Errorf("unknown stats = %+v", u)
	}
	if got := MeanAbsAdjustment(scoresOf(0.1, 0.5), scoresOf(0.3, 0.4)); !almostEqual(got, 0.15) {
		t.Errorf("MeanAbsAdjustment = %v, want 0.15", got)
	}
}
