package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	"github.com/yoockh/orbitmatch/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeCandidates struct {
	mu       sync.Mutex
	byID     map[string]*models.CandidateMatchProfile
	profiles map[string]*models.RevealedProfile
	poolErr  error
}

func newFakeCandidates(cs ...*models.CandidateMatchProfile) *fakeCandidates {
	f := &fakeCandidates{byID: map[string]*models.CandidateMatchProfile{}, profiles: map[string]*models.RevealedProfile{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCandidates) GetByID(_ context.Context, id string) (*models.CandidateMatchProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return c, nil
}

func (f *fakeCandidates) FindPool(_ context.Context, pc *matching.PoolCriteria, limit int) ([]*models.CandidateMatchProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	ids := make([]string, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*models.CandidateMatchProfile
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		if pc.Eligible(f.byID[id]) {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeCandidates) GetRevealedProfile(_ context.Context, id string) (*models.RevealedProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (f *fakeCandidates) AddBlockedCompany(_ context.Context, candidateID, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[candidateID]
	if !ok {
		return utils.ErrNotFound
	}
	if !c.HasBlocked(companyID) {
		c.BlockedCompanies = append(c.BlockedCompanies, companyID)
	}
	return nil
}

func (f *fakeCandidates) RemoveBlockedCompany(_ context.Context, candidateID, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[candidateID]
	if !ok {
		return utils.ErrNotFound
	}
	kept := c.BlockedCompanies[:0]
	for _, b := range c.BlockedCompanies {
		if b != companyID {
			kept = append(kept, b)
		}
	}
	c.BlockedCompanies = kept
	return nil
}

type fakeCompanies struct {
	byID  map[string]*models.CompanyMatchProfile
	err   error
	calls int
	mu    sync.Mutex
}

func newFakeCompanies(cs ...*models.CompanyMatchProfile) *fakeCompanies {
	f := &fakeCompanies{byID: map[string]*models.CompanyMatchProfile{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*models.CompanyMatchProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return c, nil
}

type fakeSprints struct {
	byCandidate map[string][]models.Sprint
	failFor     map[string]bool
}

func (f *fakeSprints) Recent(_ context.Context, candidateID string, since time.Time, limit int64) ([]models.Sprint, error) {
	if f.failFor[candidateID] {
		return nil, errors.New("sprint store unavailable")
	}
	var out []models.Sprint
	for _, s := range f.byCandidate[candidateID] {
		if s.CompletedAt.Before(since) {
			continue
		}
		if int64(len(out)) == limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeRecommendations struct {
	mu     sync.Mutex
	byID   map[string]*models.Recommendation
	byKey  map[string]string
	insErr error
}

func newFakeRecommendations() *fakeRecommendations {
	return &fakeRecommendations{byID: map[string]*models.Recommendation{}, byKey: map[string]string{}}
}

func (f *fakeRecommendations) InsertOnce(_ context.Context, rec *models.Recommendation) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insErr != nil {
		return false, f.insErr
	}
	key := rec.RequestID + "/" + rec.CandidateID
	if _, ok := f.byKey[key]; ok {
		return false, nil
	}
	cp := *rec
	f.byID[rec.ID] = &cp
	f.byKey[key] = rec.ID
	return true, nil
}

func (f *fakeRecommendations) GetByID(_ context.Context, id string) (*models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecommendations) GetByRequestCandidate(ctx context.Context, requestID, candidateID string) (*models.Recommendation, error) {
	f.mu.Lock()
	id, ok := f.byKey[requestID+"/"+candidateID]
	f.mu.Unlock()
	if !ok {
		return nil, utils.ErrNotFound
	}
	return f.GetByID(ctx, id)
}

func (f *fakeRecommendations) Transition(_ context.Context, id string, from, to models.RecommendationStatus, set bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok || r.Status != from {
		return utils.ErrNotFound
	}
	r.Status = to
	if v, ok := set["company_feedback"].(string); ok {
		r.CompanyFeedback = v
	}
	if v, ok := set["candidate_feedback"].(string); ok {
		r.CandidateFeedback = v
	}
	return nil
}

func (f *fakeRecommendations) ListByCompany(_ context.Context, companyID string, limit int64) ([]models.Recommendation, error) {
	return f.list(func(r *models.Recommendation) bool { return r.CompanyID == companyID }, limit), nil
}

func (f *fakeRecommendations) ListByCandidate(_ context.Context, candidateID string, limit int64) ([]models.Recommendation, error) {
	return f.list(func(r *models.Recommendation) bool { return r.CandidateID == candidateID }, limit), nil
}

func (f *fakeRecommendations) list(keep func(*models.Recommendation) bool, limit int64) []models.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Recommendation
	for _, r := range f.byID {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestID != out[j].RequestID {
			return out[i].RequestID < out[j].RequestID
		}
		return out[i].Rank < out[j].Rank
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeRecommendations) MarkOptedOut(_ context.Context, candidateID, companyID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.byID {
		if r.CandidateID == candidateID && r.CompanyID == companyID &&
			(r.Status == models.StatusPending || r.Status == models.StatusViewed) {
			r.Status = models.StatusOptedOut
			n++
		}
	}
	return n, nil
}

func (f *fakeRecommendations) all() []models.Recommendation {
	return f.list(func(*models.Recommendation) bool { return true }, 1<<30)
}

func (f *fakeRecommendations) put(r models.Recommendation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID] = &r
	f.byKey[r.RequestID+"/"+r.CandidateID] = r.ID
}

type fakeAudits struct {
	mu    sync.Mutex
	byKey map[string]models.MatchAudit
}

func (f *fakeAudits) InsertOnce(_ context.Context, a *models.MatchAudit) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byKey == nil {
		f.byKey = map[string]models.MatchAudit{}
	}
	key := a.RequestID + "/" + a.CandidateID
	if _, ok := f.byKey[key]; ok {
		return false, nil
	}
	f.byKey[key] = *a
	return true, nil
}

func (f *fakeAudits) ListByRequest(_ context.Context, requestID string) ([]models.MatchAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MatchAudit
	for _, a := range f.byKey {
		if a.RequestID == requestID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

type fakeEvents struct {
	mu  sync.Mutex
	all []models.MatchEvent
}

func (f *fakeEvents) Insert(_ context.Context, e *models.MatchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.all = append(f.all, *e)
	return nil
}

func (f *fakeEvents) ListByRecommendation(_ context.Context, id string) ([]models.MatchEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MatchEvent
	for _, e := range f.all {
		if e.RecommendationID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePrivacy struct {
	mu         sync.Mutex
	optIn      map[string]bool
	interviews map[string]string
	err        error
}

func newFakePrivacy() *fakePrivacy {
	return &fakePrivacy{optIn: map[string]bool{}, interviews: map[string]string{}}
}

func pairKey(candidateID, companyID string) string { return candidateID + "|" + companyID }

func (f *fakePrivacy) SetOptIn(_ context.Context, candidateID, companyID string, optedIn bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.optIn[pairKey(candidateID, companyID)] = optedIn
	return nil
}

func (f *fakePrivacy) IsOptedIn(_ context.Context, candidateID, companyID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.optIn[pairKey(candidateID, companyID)], nil
}

func (f *fakePrivacy) HasActiveInterview(_ context.Context, candidateID, companyID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.interviews[pairKey(candidateID, companyID)]
	return st == models.InterviewScheduled || st == models.InterviewCompleted, nil
}

func (f *fakePrivacy) RevealsByCompany(_ context.Context, companyID string) ([]models.PrivacyRecord, error) {
	return f.reveals(func(_, co string) bool { return co == companyID }), nil
}

func (f *fakePrivacy) RevealsByCandidate(_ context.Context, candidateID string) ([]models.PrivacyRecord, error) {
	return f.reveals(func(ca, _ string) bool { return ca == candidateID }), nil
}

func (f *fakePrivacy) reveals(keep func(candidateID, companyID string) bool) []models.PrivacyRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PrivacyRecord
	for k, ok := range f.optIn {
		ca, co, _ := strings.Cut(k, "|")
		if ok && keep(ca, co) {
			out = append(out, models.PrivacyRecord{CandidateID: ca, CompanyID: co, OptedIn: true})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return pairKey(out[i].CandidateID, out[i].CompanyID) < pairKey(out[j].CandidateID, out[j].CompanyID)
	})
	return out
}

type fakeFairnessRepo struct {
	mu      sync.Mutex
	attrs   map[string]map[string]string
	attrErr error
	metrics []models.FairnessMetrics
}

func (f *fakeFairnessRepo) ProtectedAttributes(_ context.Context, ids []string) (map[string]map[string]string, error) {
	if f.attrErr != nil {
		return nil, f.attrErr
	}
	out := map[string]map[string]string{}
	for _, id := range ids {
		if a, ok := f.attrs[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (f *fakeFairnessRepo) InsertMetrics(_ context.Context, m *models.FairnessMetrics) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metrics = append(f.metrics, *m)
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []models.MatchNotification
}

func (f *fakePublisher) Publish(_ context.Context, n *models.MatchNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *n)
	return nil
}

func (f *fakePublisher) notifications() []models.MatchNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MatchNotification(nil), f.sent...)
}
