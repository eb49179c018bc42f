// Package bootstrap builds the service graph shared by the HTTP server and
// the operator CLI.
package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/config"
	"github.com/yoockh/orbitmatch/internal/cache"
	"github.com/yoockh/orbitmatch/internal/events"
	"github.com/yoockh/orbitmatch/internal/matching"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	pgrepo "github.com/yoockh/orbitmatch/internal/repositories/postgres"
	"github.com/yoockh/orbitmatch/internal/services"
	"github.com/yoockh/orbitmatch/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Infra is the set of live connections. Redis and Postgres may be nil.
type Infra struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Postgres *gorm.DB
}

type Services struct {
	Matching   services.MatchingService
	Events     services.MatchEventService
	Privacy    services.PrivacyService
	Candidates services.CandidateService
	Publisher  events.Publisher
}

func Build(cfg *config.Config, infra Infra, log logrus.FieldLogger) (*Services, error) {
	if infra.Mongo == nil {
		return nil, fmt.Errorf("bootstrap: mongo database is required")
	}

	candidates := mongorepo.NewCandidateRepo(infra.Mongo)
	companies := mongorepo.NewCompanyRepo(infra.Mongo)
	recs := mongorepo.NewRecommendationRepo(infra.Mongo)

	scorer, err := matching.NewScorer(cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: scorer: %w", err)
	}

	privacy, err := services.NewPrivacyService(mongorepo.NewPrivacyRepo(infra.Mongo), candidates, services.DefaultHandleCacheSize, log)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: privacy: %w", err)
	}

	deps := services.MatchingDeps{
		Companies:        companies,
		Recommendations:  recs,
		Audits:           mongorepo.NewAuditRepo(infra.Mongo),
		Pool:             services.NewCandidatePoolService(candidates, log),
		Features:         services.NewFeatureService(mongorepo.NewSprintRepo(infra.Mongo), cfg.FeatureConcurrency, log),
		Fairness:         services.NewFairnessService(mongorepo.NewFairnessRepo(infra.Mongo), log),
		Privacy:          privacy,
		Scorer:           scorer,
		Log:              log,
		ModelVersion:     cfg.ModelVersion,
		FeatureVersion:   cfg.FeatureVersion,
		CacheTTL:         cfg.CacheTTL,
		WriteConcurrency: cfg.FeatureConcurrency,
	}

	var pub events.Publisher = events.Noop{}
	if infra.Redis != nil {
		deps.Cache = cache.NewRedisCache(infra.Redis)
		pub = events.NewRedisStream(infra.Redis, events.DefaultStream)
	}
	deps.Events = pub

	if infra.Postgres != nil {
		deps.AuditMirror = pgrepo.NewAuditLogRepo(infra.Postgres)
	}

	if cfg.AuditSealKey != "" {
		sealer, err := utils.NewSealer(cfg.AuditSealKey)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: AUDIT_SEAL_KEY: %w", err)
		}
		deps.Sealer = sealer
	}

	return &Services{
		Matching:   services.NewMatchingService(deps),
		Events:     services.NewMatchEventService(recs, mongorepo.NewEventRepo(infra.Mongo), pub, log),
		Privacy:    privacy,
		Candidates: services.NewCandidateService(candidates, companies, recs, log),
		Publisher:  pub,
	}, nil
}
