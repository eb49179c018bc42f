package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"github.com/yoockh/orbitmatch/internal/utils"
)

type CandidateService interface {
	// BlockCompany excludes the candidate from the company's future pools and
	// closes open recommendations between them.
	BlockCompany(ctx context.Context, candidateID, companyID string) (closed int64, err error)
	UnblockCompany(ctx context.Context, candidateID, companyID string) error
	MatchedCompanies(ctx context.Context, candidateID string, limit int) ([]models.MatchedCompany, error)
}

type candidateService struct {
	candidates mongorepo.CandidateRepository
	companies  mongorepo.CompanyRepository
	recs       mongorepo.RecommendationRepository
	log        logrus.FieldLogger
}

func NewCandidateService(candidates mongorepo.CandidateRepository, companies mongorepo.CompanyRepository, recs mongorepo.RecommendationRepository, log logrus.FieldLogger) CandidateService {
	return &candidateService{candidates: candidates, companies: companies, recs: recs, log: log}
}

func (s *candidateService) BlockCompany(ctx context.Context, candidateID, companyID string) (int64, error) {
	const op = "CandidateService.BlockCompany"

	if candidateID == "" || companyID == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "candidate_id and company_id are required", nil)
	}
	if err := s.candidates.AddBlockedCompany(ctx, candidateID, companyID); err != nil {
		return 0, utils.FromStore(op, "candidate not found", err)
	}
	closed, err := s.recs.MarkOptedOut(ctx, candidateID, companyID)
	if err != nil {
		return 0, utils.FromStore(op, "failed to close recommendations", err)
	}

	s.log.WithFields(logrus.Fields{
		"candidate_id": candidateID,
		"company_id":   companyID,
		"closed":       closed,
	}).Info("candidate blocked company")
	return closed, nil
}

func (s *candidateService) UnblockCompany(ctx context.Context, candidateID, companyID string) error {
	const op = "CandidateService.UnblockCompany"

	if candidateID == "" || companyID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "candidate_id and company_id are required", nil)
	}
	if err := s.candidates.RemoveBlockedCompany(ctx, candidateID, companyID); err != nil {
		return utils.FromStore(op, "candidate not found", err)
	}
	return nil
}

func (s *candidateService) MatchedCompanies(ctx context.Context, candidateID string, limit int) ([]models.MatchedCompany, error) {
	const op = "CandidateService.MatchedCompanies"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	recs, err := s.recs.ListByCandidate(ctx, candidateID, int64(clampLimit(limit)))
	if err != nil {
		return nil, utils.FromStore(op, "failed to list recommendations", err)
	}

	names := map[string]string{}
	out := make([]models.MatchedCompany, 0, len(recs))
	for _, r := range recs {
		name, ok := names[r.CompanyID]
		if !ok {
			co, err := s.companies.GetByID(ctx, r.CompanyID)
			switch {
			case err == nil:
				name = co.Name
			case errors.Is(err, utils.ErrNotFound):
			default:
				return nil, utils.FromStore(op, "failed to load company", err)
			}
			names[r.CompanyID] = name
		}
		out = append(out, models.MatchedCompany{
			RecommendationID: r.ID,
			CompanyID:        r.CompanyID,
			CompanyName:      name,
			RoleTitle:        r.RoleTitle,
			Status:           r.Status,
			RevealAllowed:    r.RevealAllowed,
			MatchedAt:        r.CreatedAt,
		})
	}
	return out, nil
}
