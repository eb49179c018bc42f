package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"github.com/yoockh/orbitmatch/internal/utils"
	"golang.org/x/sync/errgroup"
)

type FeatureService interface {
	ComputeFeatures(ctx context.Context, c *models.CandidateMatchProfile, role *models.RoleRequirements) (models.Features, error)
	// ComputeBatch returns features in candidate order. A candidate whose
	// history cannot be loaded gets empty features.
	ComputeBatch(ctx context.Context, candidates []*models.CandidateMatchProfile, role *models.RoleRequirements) []models.Features
}

type featureService struct {
	sprints     mongorepo.SprintRepository
	log         logrus.FieldLogger
	concurrency int
	now         func() time.Time
}

func NewFeatureService(sprints mongorepo.SprintRepository, concurrency int, log logrus.FieldLogger) FeatureService {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &featureService{
		sprints:     sprints,
		log:         log,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *featureService) ComputeFeatures(ctx context.Context, c *models.CandidateMatchProfile, role *models.RoleRequirements) (models.Features, error) {
	const op = "FeatureService.ComputeFeatures"

	now := s.now()
	history, err := s.sprints.Recent(ctx, c.ID, now.Add(-matching.HistoryWindow), matching.HistoryMaxItems)
	if err != nil {
		return nil, utils.FromStore(op, "failed to load sprint history", err)
	}
	return matching.ComputeFeatures(c, role, history, now), nil
}

func (s *featureService) ComputeBatch(ctx context.Context, candidates []*models.CandidateMatchProfile, role *models.RoleRequirements) []models.Features {
	out := make([]models.Features, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			f, err := s.ComputeFeatures(gctx, c, role)
			if err != nil {
				s.log.WithError(err).WithField("candidate_id", c.ID).Warn("feature computation failed, using empty features")
				out[i] = models.Features{}
				return nil
			}
			out[i] = f
			return nil
		})
	}
	_ = g.Wait()
	return out
}
