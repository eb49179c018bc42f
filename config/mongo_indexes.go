package config

import (
	"context"
	"time"

	repo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIndexes lists the indexes the service relies on, per collection.
// The unique (request_id, candidate_id) pairs make match writes idempotent.
func MongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		repo.CollCandidates: {
			{
				Keys: bson.D{
					{Key: "availability_status", Value: 1},
					{Key: "anonymized_view", Value: 1},
					{Key: "orbit", Value: 1},
					{Key: "reputation_score", Value: -1},
				},
				Options: options.Index().SetName("pool_lookup"),
			},
		},
		repo.CollSprints: {
			{
				Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "completed_at", Value: -1}},
				Options: options.Index().SetName("by_candidate_completed"),
			},
		},
		repo.CollCandidateAttributes: {
			{
				Keys:    bson.D{{Key: "candidate_id", Value: 1}},
				Options: options.Index().SetName("uniq_candidate").SetUnique(true),
			},
		},
		repo.CollCandidatePrivacy: {
			{
				Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "company_id", Value: 1}},
				Options: options.Index().SetName("uniq_candidate_company").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "updated_at", Value: -1}},
				Options: options.Index().SetName("by_company_updated"),
			},
		},
		repo.CollInterviews: {
			{
				Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "company_id", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("by_pair_status"),
			},
		},
		repo.CollRecommendations: {
			{
				Keys:    bson.D{{Key: "request_id", Value: 1}, {Key: "candidate_id", Value: 1}},
				Options: options.Index().SetName("uniq_request_candidate").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("by_company_created"),
			},
			{
				Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("by_candidate_created"),
			},
		},
		repo.CollMatchAudit: {
			{
				Keys:    bson.D{{Key: "request_id", Value: 1}, {Key: "candidate_id", Value: 1}},
				Options: options.Index().SetName("uniq_request_candidate").SetUnique(true),
			},
		},
		repo.CollMatchEvents: {
			{
				Keys:    bson.D{{Key: "recommendation_id", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("by_recommendation_created"),
			},
		},
		repo.CollFairnessMetrics: {
			{
				Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("by_company_created"),
			},
		},
	}
}

func EnsureMongoIndexes() error {
	db, err := MongoDatabase()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	for coll, models := range MongoIndexes() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
