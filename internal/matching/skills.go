// Package matching holds the pure computations behind candidate matching:
// skill normalization, feature extraction, component scoring, fairness
// re-ranking and anonymous handles. Nothing here performs I/O.
package matching

import "strings"

// techAliases maps common abbreviations to a canonical token. Lookup is a
// single step, so "node.js" becomes "nodejs" and stops there.
var techAliases = map[string]string{
	"js":        "javascript",
	"ts":        "typescript",
	"py":        "python",
	"react.js":  "react",
	"reactjs":   "react",
	"node.js":   "nodejs",
	"nodejs":    "node",
	"postgres":  "postgresql",
	"k8s":       "kubernetes",
	"aws":       "amazon web services",
	"gcp":       "google cloud platform",
	"ml":        "machine learning",
	"ai":        "artificial intelligence",
	"ui":        "user interface",
	"ux":        "user experience",
	"frontend":  "front end",
	"backend":   "back end",
	"fullstack": "full stack",
}

type SkillSet map[string]struct{}

func (s SkillSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// CanonicalSkill lowercases, trims and resolves aliases.
func CanonicalSkill(skill string) string {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if alias, ok := techAliases[skill]; ok {
		return alias
	}
	return skill
}

// NormalizeSkills returns the canonical tokens for skills. Compound terms
// contribute both the full term and each word.
func NormalizeSkills(skills []string) SkillSet {
	out := SkillSet{}
	for _, raw := range skills {
		skill := CanonicalSkill(raw)
		if skill == "" {
			continue
		}
		out[skill] = struct{}{}
		for _, part := range strings.Fields(skill) {
			out[part] = struct{}{}
		}
	}
	return out
}

// Jaccard is |a∩b| / |a∪b|, 0 when either side is empty.
func Jaccard(a, b SkillSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b.Has(k) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// IsSuperset reports whether have contains every token of want.
func IsSuperset(have, want SkillSet) bool {
	for k := range want {
		if !have.Has(k) {
			return false
		}
	}
	return true
}

// CultureMatch is |a∩b| / min(|a|,|b|) over exact tags.
func CultureMatch(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sa := map[string]struct{}{}
	for _, t := range a {
		sa[t] = struct{}{}
	}
	sb := map[string]struct{}{}
	for _, t := range b {
		sb[t] = struct{}{}
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	return float64(inter) / float64(min(len(sa), len(sb)))
}
