package services

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"github.com/yoockh/orbitmatch/internal/utils"
)

const DefaultHandleCacheSize = 10000

type PrivacyService interface {
	AnonymousHandle(candidateID, companyID string) string
	// PurgeHandles drops cached handles. Called at day rollover.
	PurgeHandles()
	CanRevealDetails(ctx context.Context, candidateID, companyID string) (bool, error)
	RevealedProfile(ctx context.Context, candidateID, companyID string) (*models.RevealedProfile, error)
	OptIn(ctx context.Context, candidateID, companyID string) error
	OptOut(ctx context.Context, candidateID, companyID string) error
	CompanyRevealHistory(ctx context.Context, companyID string) ([]models.PrivacyRecord, error)
	CandidateRevealHistory(ctx context.Context, candidateID string) ([]models.PrivacyRecord, error)
}

type privacyService struct {
	privacy    mongorepo.PrivacyRepository
	candidates mongorepo.CandidateRepository
	handles    *lru.Cache[string, string]
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewPrivacyService(privacy mongorepo.PrivacyRepository, candidates mongorepo.CandidateRepository, cacheSize int, log logrus.FieldLogger) (PrivacyService, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultHandleCacheSize
	}
	handles, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &privacyService{
		privacy:    privacy,
		candidates: candidates,
		handles:    handles,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *privacyService) AnonymousHandle(candidateID, companyID string) string {
	day := s.now()
	key := candidateID + ":" + companyID + ":" + matching.DayKey(day)
	if h, ok := s.handles.Get(key); ok {
		return h
	}
	h := matching.AnonymousHandle(candidateID, companyID, day)
	s.handles.Add(key, h)
	return h
}

func (s *privacyService) PurgeHandles() {
	n := s.handles.Len()
	s.handles.Purge()
	s.log.WithField("entries", n).Info("anonymous handle cache purged")
}

func (s *privacyService) CanRevealDetails(ctx context.Context, candidateID, companyID string) (bool, error) {
	const op = "PrivacyService.CanRevealDetails"

	if candidateID == "" || companyID == "" {
		return false, utils.E(utils.CodeInvalidArgument, op, "candidate_id and company_id are required", nil)
	}

	optedIn, err := s.privacy.IsOptedIn(ctx, candidateID, companyID)
	if err != nil {
		return false, utils.FromStore(op, "failed to read reveal consent", err)
	}
	if optedIn {
		return true, nil
	}

	interviewing, err := s.privacy.HasActiveInterview(ctx, candidateID, companyID)
	if err != nil {
		return false, utils.FromStore(op, "failed to read interviews", err)
	}
	return interviewing, nil
}

func (s *privacyService) RevealedProfile(ctx context.Context, candidateID, companyID string) (*models.RevealedProfile, error) {
	const op = "PrivacyService.RevealedProfile"

	ok, err := s.CanRevealDetails(ctx, candidateID, companyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.E(utils.CodeForbidden, op, "candidate details are not revealed to this company", nil)
	}

	p, err := s.candidates.GetRevealedProfile(ctx, candidateID)
	if err != nil {
		return nil, utils.FromStore(op, "candidate not found", err)
	}
	return p, nil
}

func (s *privacyService) OptIn(ctx context.Context, candidateID, companyID string) error {
	return s.setOptIn(ctx, "PrivacyService.OptIn", candidateID, companyID, true)
}

func (s *privacyService) OptOut(ctx context.Context, candidateID, companyID string) error {
	return s.setOptIn(ctx, "PrivacyService.OptOut", candidateID, companyID, false)
}

func (s *privacyService) setOptIn(ctx context.Context, op, candidateID, companyID string, optedIn bool) error {
	if candidateID == "" || companyID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "candidate_id and company_id are required", nil)
	}
	if err := s.privacy.SetOptIn(ctx, candidateID, companyID, optedIn); err != nil {
		return utils.FromStore(op, "failed to store reveal consent", err)
	}
	s.log.WithFields(logrus.Fields{
		"candidate_id": candidateID,
		"company_id":   companyID,
		"opted_in":     optedIn,
	}).Info("reveal consent updated")
	return nil
}

func (s *privacyService) CompanyRevealHistory(ctx context.Context, companyID string) ([]models.PrivacyRecord, error) {
	const op = "PrivacyService.CompanyRevealHistory"

	out, err := s.privacy.RevealsByCompany(ctx, companyID)
	if err != nil {
		return nil, utils.FromStore(op, "failed to list reveals", err)
	}
	return out, nil
}

func (s *privacyService) CandidateRevealHistory(ctx context.Context, candidateID string) ([]models.PrivacyRecord, error) {
	const op = "PrivacyService.CandidateRevealHistory"

	out, err := s.privacy.RevealsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, utils.FromStore(op, "failed to list reveals", err)
	}
	return out, nil
}
