package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/cache"
	"github.com/yoockh/orbitmatch/internal/events"
	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	pgrepo "github.com/yoockh/orbitmatch/internal/repositories/postgres"
	"github.com/yoockh/orbitmatch/internal/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMatchCacheTTL    = 15 * time.Minute
	defaultWriteConcurrency = 8
	defaultHistoryLimit     = 50
	maxHistoryLimit         = 200
)

type MatchingService interface {
	// Match runs pool, features, scoring, fairness and ranking for one
	// request and persists every returned recommendation before returning.
	Match(ctx context.Context, req *models.MatchRequest, actorID string) (*models.MatchResponse, error)
	CompanyHistory(ctx context.Context, companyID string, limit int) ([]models.Recommendation, error)
}

// MatchingDeps wires the orchestrator. Cache, Events, AuditMirror and Sealer
// are optional.
type MatchingDeps struct {
	Companies       mongorepo.CompanyRepository
	Recommendations mongorepo.RecommendationRepository
	Audits          mongorepo.AuditRepository
	AuditMirror     pgrepo.AuditLogRepository

	Pool     CandidatePoolService
	Features FeatureService
	Fairness FairnessService
	Privacy  PrivacyService
	Scorer   *matching.Scorer

	Cache  cache.Cache
	Events events.Publisher
	Sealer *utils.Sealer
	Log    logrus.FieldLogger

	ModelVersion     string
	FeatureVersion   string
	CacheTTL         time.Duration
	WriteConcurrency int
}

type matchingService struct {
	MatchingDeps
	now func() time.Time
}

func NewMatchingService(d MatchingDeps) MatchingService {
	if d.CacheTTL <= 0 {
		d.CacheTTL = DefaultMatchCacheTTL
	}
	if d.WriteConcurrency <= 0 {
		d.WriteConcurrency = defaultWriteConcurrency
	}
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	return &matchingService{
		MatchingDeps: d,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// rankedEntry keeps a candidate paired with its score through sorting.
type rankedEntry struct {
	candidate *models.CandidateMatchProfile
	features  models.Features
	score     models.MatchScore

	handle string
	reveal bool
	rank   int
}

func (s *matchingService) Match(ctx context.Context, req *models.MatchRequest, actorID string) (*models.MatchResponse, error) {
	const op = "MatchingService.Match"

	if err := validateMatchRequest(req); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}
	log := s.Log.WithField("company_id", req.CompanyID)

	content, err := memoContent(req)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to fingerprint request", err)
	}
	if resp, ok := s.cached(ctx, log, req.RequestID, content); ok {
		return resp, nil
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log = log.WithField("request_id", requestID)
	now := s.now()

	pool, err := s.Pool.BuildPool(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		log.Info("empty candidate pool")
		return &models.MatchResponse{
			RequestID:    requestID,
			Results:      []models.CandidateScore{},
			ModelVersion: s.ModelVersion,
			GeneratedAt:  now,
		}, nil
	}

	company, err := s.Companies.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, utils.FromStore(op, "company not found", err)
	}

	features := s.Features.ComputeBatch(ctx, pool, &req.Role)
	scores := s.Scorer.WithClock(s.now).ScoreBatch(pool, features, &req.Role, company)
	adjusted := s.Fairness.ApplyConstraints(ctx, requestID, pool, scores, company)

	entries := make([]rankedEntry, len(pool))
	for i := range pool {
		entries[i] = rankedEntry{candidate: pool[i], features: features[i], score: adjusted[i]}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].score.FinalScore != entries[b].score.FinalScore {
			return entries[a].score.FinalScore > entries[b].score.FinalScore
		}
		return entries[a].candidate.ID < entries[b].candidate.ID
	})
	if limit := req.Filters.Limit(); len(entries) > limit {
		entries = entries[:limit]
	}

	if err := s.persist(ctx, log, req, company, requestID, actorID, entries, now); err != nil {
		return nil, utils.FromStore(op, "failed to persist recommendations", err)
	}

	// A replayed request id answers with what was stored first.
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].rank < entries[b].rank })

	resp := &models.MatchResponse{
		RequestID:    requestID,
		Results:      make([]models.CandidateScore, len(entries)),
		ModelVersion: s.ModelVersion,
		GeneratedAt:  now,
	}
	for i, e := range entries {
		resp.Results[i] = models.CandidateScore{
			AnonID:        e.handle,
			Score:         e.score.FinalScore,
			Reasons:       nonNilStrings(e.score.RankingReasons),
			FeatureScores: e.score.Components(),
			Rank:          e.rank,
			RevealAllowed: e.reveal,
		}
	}

	s.remember(ctx, log, req.RequestID, content, resp)
	if err := s.Events.Publish(ctx, &models.MatchNotification{
		Type:      models.NotificationMatchGenerated,
		CompanyID: req.CompanyID,
		RequestID: requestID,
		Results:   len(resp.Results),
		At:        now,
	}); err != nil {
		log.WithError(err).Warn("failed to publish match notification")
	}

	log.WithFields(logrus.Fields{
		"pool_size": len(pool),
		"results":   len(resp.Results),
	}).Info("match completed")
	return resp, nil
}

// persist writes one Recommendation and one MatchAudit per entry. Writes run
// concurrently across candidates and all of them finish before it returns.
// When a recommendation already exists for (request, candidate) the entry is
// rewritten from the stored row so the caller sees what was persisted.
func (s *matchingService) persist(ctx context.Context, log logrus.FieldLogger, req *models.MatchRequest, company *models.CompanyMatchProfile, requestID, actorID string, entries []rankedEntry, now time.Time) error {
	weights := s.Scorer.Weights().Snapshot()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.WriteConcurrency)
	for i := range entries {
		e := &entries[i]
		e.rank = i + 1
		g.Go(func() error {
			c := e.candidate
			e.handle = s.Privacy.AnonymousHandle(c.ID, company.ID)

			reveal, err := s.Privacy.CanRevealDetails(gctx, c.ID, company.ID)
			if err != nil {
				log.WithError(err).WithField("candidate_id", c.ID).Warn("reveal check failed, keeping candidate anonymous")
				reveal = false
			}
			e.reveal = reveal

			rec := &models.Recommendation{
				ID:               uuid.NewString(),
				RequestID:        requestID,
				CompanyID:        company.ID,
				CandidateID:      c.ID,
				RoleTitle:        req.Role.Title,
				Scores:           e.score,
				Rank:             e.rank,
				Confidence:       e.features.Coverage(),
				Status:           models.StatusPending,
				AnonymizedHandle: e.handle,
				RevealAllowed:    reveal,
				ModelVersion:     s.ModelVersion,
				FeatureVersion:   s.FeatureVersion,
				ExpiresAt:        now.Add(models.RecommendationTTL),
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			inserted, err := s.Recommendations.InsertOnce(gctx, rec)
			if err != nil {
				return err
			}
			if !inserted {
				stored, err := s.Recommendations.GetByRequestCandidate(gctx, requestID, c.ID)
				if err != nil {
					return err
				}
				if stored.Rank != e.rank || stored.Scores.FinalScore != e.score.FinalScore {
					log.WithFields(logrus.Fields{
						"candidate_id": c.ID,
						"stored_rank":  stored.Rank,
						"rank":         e.rank,
						"stored_score": stored.Scores.FinalScore,
						"score":        e.score.FinalScore,
					}).Warn("request replayed with diverging scores, answering from stored recommendation")
				}
				rec = stored
				e.score = stored.Scores
				e.rank = stored.Rank
				e.handle = stored.AnonymizedHandle
				e.reveal = stored.RevealAllowed
			}

			audit := &models.MatchAudit{
				ID:                  uuid.NewString(),
				RecommendationID:    rec.ID,
				CompanyID:           company.ID,
				CandidateID:         c.ID,
				RequestID:           requestID,
				Scores:              e.score.Components(),
				FeatureValues:       e.features.ToMap(),
				RankingReasons:      e.score.RankingReasons,
				Rank:                e.rank,
				ModelVersion:        s.ModelVersion,
				FeatureVersion:      s.FeatureVersion,
				WeightsSnapshot:     weights,
				FairnessAdjustments: e.score.AdjustmentFactors,
				ActorID:             actorID,
				CreatedAt:           now,
			}
			if s.Sealer != nil {
				sealed, err := s.sealDetails(c, e.handle, requestID)
				if err != nil {
					return err
				}
				audit.EncryptedDetails = sealed
			}
			if _, err := s.Audits.InsertOnce(gctx, audit); err != nil {
				return err
			}
			if s.AuditMirror != nil {
				if err := s.AuditMirror.Mirror(gctx, audit); err != nil {
					log.WithError(err).WithField("candidate_id", c.ID).Warn("audit mirror write failed")
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// auditDetails is the candidate snapshot sealed into MatchAudit.EncryptedDetails.
type auditDetails struct {
	CandidateID      string   `json:"candidate_id"`
	AnonymizedHandle string   `json:"anonymized_handle"`
	Timezone         string   `json:"timezone"`
	ReputationScore  float64  `json:"reputation_score"`
	Skills           []string `json:"skills"`
}

// SealAdditionalData binds sealed audit details to their (request, candidate) row.
func SealAdditionalData(requestID, candidateID string) []byte {
	return []byte(requestID + ":" + candidateID)
}

func (s *matchingService) sealDetails(c *models.CandidateMatchProfile, handle, requestID string) (string, error) {
	b, err := json.Marshal(auditDetails{
		CandidateID:      c.ID,
		AnonymizedHandle: handle,
		Timezone:         c.Timezone,
		ReputationScore:  c.ReputationScore,
		Skills:           c.Skills,
	})
	if err != nil {
		return "", err
	}
	return s.Sealer.Seal(b, SealAdditionalData(requestID, c.ID))
}

func (s *matchingService) CompanyHistory(ctx context.Context, companyID string, limit int) ([]models.Recommendation, error) {
	const op = "MatchingService.CompanyHistory"

	if companyID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "company_id is required", nil)
	}
	out, err := s.Recommendations.ListByCompany(ctx, companyID, int64(clampLimit(limit)))
	if err != nil {
		return nil, utils.FromStore(op, "failed to list recommendations", err)
	}
	return out, nil
}

func validateMatchRequest(req *models.MatchRequest) error {
	if req == nil {
		return errors.New("request body is required")
	}
	if req.CompanyID == "" {
		return errors.New("company_id is required")
	}
	if req.Role.Title == "" {
		return errors.New("role.title is required")
	}
	if !req.Role.Seniority.Valid() {
		return fmt.Errorf("unknown role.seniority %q", req.Role.Seniority)
	}
	if req.Role.TeamSize < 0 {
		return errors.New("role.team_size must not be negative")
	}
	if f := req.Filters; f != nil {
		if f.MaxCandidates < 0 {
			return errors.New("filters.max_candidates must not be negative")
		}
		if f.MinReputation != nil && (*f.MinReputation < 0 || *f.MinReputation > 100) {
			return errors.New("filters.min_reputation must be within [0,100]")
		}
		if f.TimezoneOverlap != "" {
			if _, err := matching.ParseTimezoneRange(f.TimezoneOverlap); err != nil {
				return err
			}
		}
	}
	return nil
}

// memoContent is the canonical request payload the memo fingerprints.
// request_id and created_at are excluded so retries of the same query share
// the content entry.
func memoContent(req *models.MatchRequest) ([]byte, error) {
	cp := *req
	cp.RequestID = ""
	cp.CreatedAt = time.Time{}
	return json.Marshal(cp)
}

func (s *matchingService) memo() *cache.MatchMemo {
	if s.Cache == nil {
		return nil
	}
	return cache.NewMatchMemo(s.Cache, s.CacheTTL)
}

func (s *matchingService) cached(ctx context.Context, log logrus.FieldLogger, requestID string, content []byte) (*models.MatchResponse, bool) {
	var resp models.MatchResponse
	hit, err := s.memo().Lookup(ctx, requestID, content, &resp)
	if err != nil {
		log.WithError(err).Warn("match cache read failed")
		return nil, false
	}
	if !hit {
		return nil, false
	}
	log.WithField("request_id", resp.RequestID).Debug("match served from cache")
	return &resp, true
}

func (s *matchingService) remember(ctx context.Context, log logrus.FieldLogger, requestID string, content []byte, resp *models.MatchResponse) {
	if err := s.memo().Store(ctx, requestID, content, resp); err != nil {
		log.WithError(err).Warn("match cache write failed")
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
