package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"github.com/yoockh/orbitmatch/internal/utils"
)

type CandidatePoolService interface {
	// BuildPool returns at most matching.PoolCap eligible candidates, unranked.
	BuildPool(ctx context.Context, req *models.MatchRequest) ([]*models.CandidateMatchProfile, error)
}

type candidatePoolService struct {
	candidates mongorepo.CandidateRepository
	log        logrus.FieldLogger
}

func NewCandidatePoolService(candidates mongorepo.CandidateRepository, log logrus.FieldLogger) CandidatePoolService {
	return &candidatePoolService{candidates: candidates, log: log}
}

func (s *candidatePoolService) BuildPool(ctx context.Context, req *models.MatchRequest) ([]*models.CandidateMatchProfile, error) {
	const op = "CandidatePoolService.BuildPool"

	pc, err := matching.NewPoolCriteria(req)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	pool, err := s.candidates.FindPool(ctx, pc, matching.PoolCap)
	if err != nil {
		return nil, utils.FromStore(op, "failed to load candidate pool", err)
	}

	s.log.WithFields(logrus.Fields{
		"company_id": req.CompanyID,
		"pool_size":  len(pool),
	}).Debug("candidate pool built")
	return pool, nil
}
