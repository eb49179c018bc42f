package matching

import "testing"

func TestNormalizeSkills(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"alias", []string{"Postgres"}, []string{"postgresql"}},
		{"single step alias", []string{"node.js"}, []string{"nodejs"}},
		{"compound split", []string{"AWS"}, []string{"amazon web services", "amazon", "web", "services"}},
		{"trim and lower", []string{"  Go  "}, []string{"go"}},
		{"empty ignored", []string{"", "   "}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeSkills(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("NormalizeSkills(%v) has %d tokens, want %d (%v)", tc.in, len(got), len(tc.want), got)
			}
			for _, w := range tc.want {
				if !got.Has(w) {
					t.Errorf("NormalizeSkills(%v) missing %q", tc.in, w)
				}
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	a := NormalizeSkills([]string{"python", "postgres"})
	cases := []struct {
		name string
		b    []string
		want float64
	}{
		{"identical", []string{"py", "postgresql"}, 1},
		{"half", []string{"python"}, 0.5},
		{"disjoint", []string{"java"}, 0},
		{"empty", nil, 0},
		{"one of three", []string{"python", "go"}, 1.0 / 3.0},
	}
	for _, tc := range cases {
		if got := Jaccard(a, NormalizeSkills(tc.b)); !almostEqual(got, tc.want) {
			t.Errorf("%s: Jaccard = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsSuperset(t *testing.T) {
	t.Parallel()

	have := NormalizeSkills([]string{"Python", "postgres", "docker"})
	if !IsSuperset(have, NormalizeSkills([]string{"python", "postgresql"})) {
		t.Error("expected superset after alias normalization")
	}
	if IsSuperset(have, NormalizeSkills([]string{"python", "kubernetes"})) {
		t.Error("kubernetes is missing, superset must be false")
	}
	if !IsSuperset(have, SkillSet{}) {
		t.Error("every set is a superset of the empty set")
	}
}

func TestCultureMatch(t *testing.T) {
	t.Parallel()

	if got := CultureMatch([]string{"async", "remote"}, []string{"async", "remote", "flat", "ownership"}); got != 1 {
		t.Errorf("CultureMatch = %v, want 1 (denominator is the smaller set)", got)
	}
	if got := CultureMatch([]string{"async"}, nil); got != 0 {
		t.Errorf("CultureMatch with empty side = %v, want 0", got)
	}
	if got := CultureMatch([]string{"a", "b"}, []string{"b", "c"}); got != 0.5 {
		t.Errorf("CultureMatch = %v, want 0.5", got)
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
