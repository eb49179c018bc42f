package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
)

type FairnessService interface {
	// ApplyConstraints returns adjusted copies of scores. It never fails the
	// request: missing attributes and metric write errors are logged.
	ApplyConstraints(ctx context.Context, requestID string, candidates []*models.CandidateMatchProfile, scores []models.MatchScore, company *models.CompanyMatchProfile) []models.MatchScore
}

type fairnessService struct {
	repo mongorepo.FairnessRepository
	log  logrus.FieldLogger
}

func NewFairnessService(repo mongorepo.FairnessRepository, log logrus.FieldLogger) FairnessService {
	return &fairnessService{repo: repo, log: log}
}

func (s *fairnessService) ApplyConstraints(ctx context.Context, requestID string, candidates []*models.CandidateMatchProfile, scores []models.MatchScore, company *models.CompanyMatchProfile) []models.MatchScore {
	if company == nil || len(company.FairnessConstraints) == 0 {
		adjusted, _ := matching.ApplyConstraints(scores, nil, company)
		return adjusted
	}
	log := s.log.WithFields(logrus.Fields{"request_id": requestID, "company_id": company.ID})

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	byID, err := s.repo.ProtectedAttributes(ctx, ids)
	if err != nil {
		log.WithError(err).Warn("protected attributes unavailable, treating candidates as unknown")
		byID = nil
	}
	attrs := make([]map[string]string, len(candidates))
	for i, id := range ids {
		attrs[i] = byID[id]
	}

	adjusted, ignored := matching.ApplyConstraints(scores, attrs, company)
	if len(ignored) > 0 {
		log.WithField("constraints", ignored).Warn("ignoring unknown fairness constraints")
	}

	metrics := &models.FairnessMetrics{
		RequestID:           requestID,
		CompanyID:           company.ID,
		Constraints:         company.FairnessConstraints,
		IgnoredConstraints:  ignored,
		OriginalMean:        matching.MeanFinal(scores),
		AdjustedMean:        matching.MeanFinal(adjusted),
		AdjustmentMagnitude: matching.MeanAbsAdjustment(scores, adjusted),
		GroupStats:          matching.GroupStats(adjusted, attrs),
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.repo.InsertMetrics(ctx, metrics); err != nil {
		log.WithError(err).Warn("failed to record fairness metrics")
	}
	return adjusted
}
