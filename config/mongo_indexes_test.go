package config

import (
	"testing"

	repo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoIndexesUniqueMatchKeys(t *testing.T) {
	t.Parallel()

	idx := MongoIndexes()
	for _, coll := range []string{repo.CollRecommendations, repo.CollMatchAudit} {
		found := false
		for _, m := range idx[coll] {
			keys, ok := m.Keys.(bson.D)
			if !ok || len(keys) != 2 {
				continue
			}
			if keys[0].Key == "request_id" && keys[1].Key == "candidate_id" {
				found = m.Options != nil && m.Options.Unique != nil && *m.Options.Unique
			}
		}
		if !found {
			t.Errorf("%s: missing unique (request_id, candidate_id) index", coll)
		}
	}
}

func TestMongoIndexesNamesUniquePerCollection(t *testing.T) {
	t.Parallel()

	for coll, models := range MongoIndexes() {
		seen := map[string]bool{}
		for _, m := range models {
			if m.Options == nil || m.Options.Name == nil {
				t.Errorf("%s: index without name", coll)
				continue
			}
			if seen[*m.Options.Name] {
				t.Errorf("%s: duplicate index name %q", coll, *m.Options.Name)
			}
			seen[*m.Options.Name] = true
		}
	}
}
