package services

import (
	"context"
	"testing"
	"time"

	"github.com/yoockh/orbitmatch/internal/logger"
	"github.com/yoockh/orbitmatch/internal/matching"
	"github.com/yoockh/orbitmatch/internal/models"
	"github.com/yoockh/orbitmatch/internal/utils"
)

func newPrivacyHarness(t *testing.T) (*privacyService, *fakePrivacy, *fakeCandidates) {
	t.Helper()
	repo := newFakePrivacy()
	cands := newFakeCandidates(candidate("cand1", 50, "go"))
	cands.profiles["cand1"] = &models.RevealedProfile{ID: "cand1", Name: "Ada", Email: "ada@example.com"}

	svc, err := NewPrivacyService(repo, cands, 4, logger.Discard())
	if err != nil {
		t.Fatalf("NewPrivacyService: %v", err)
	}
	ps := svc.(*privacyService)
	ps.now = func() time.Time { return testNow }
	return ps, repo, cands
}

func TestCanRevealDetails(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newPrivacyHarness(t)
	ctx := context.Background()

	ok, err := svc.CanRevealDetails(ctx, "cand1", "co1")
	if err != nil || ok {
		t.Fatalf("default = %v, %v; want false, nil", ok, err)
	}

	if err := svc.OptIn(ctx, "cand1", "co1"); err != nil {
		t.Fatalf("OptIn: %v", err)
	}
	if ok, _ := svc.CanRevealDetails(ctx, "cand1", "co1"); !ok {
		t.Fatal("reveal denied right after opt-in")
	}

	if err := svc.OptOut(ctx, "cand1", "co1"); err != nil {
		t.Fatalf("OptOut: %v", err)
	}
	if ok, _ := svc.CanRevealDetails(ctx, "cand1", "co1"); ok {
		t.Fatal("reveal allowed after opt-out")
	}

	repo.interviews[pairKey("cand1", "co1")] = models.InterviewScheduled
	if ok, _ := svc.CanRevealDetails(ctx, "cand1", "co1"); !ok {
		t.Fatal("reveal denied with a scheduled interview")
	}
	repo.interviews[pairKey("cand1", "co1")] = models.InterviewCancelled
	if ok, _ := svc.CanRevealDetails(ctx, "cand1", "co1"); ok {
		t.Fatal("cancelled interview allowed reveal")
	}

	if _, err := svc.CanRevealDetails(ctx, "", "co1"); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("err = %v, want invalid argument", err)
	}
}

func TestRevealedProfile(t *testing.T) {
	t.Parallel()
	svc, _, _ := newPrivacyHarness(t)
	ctx := context.Background()

	if _, err := svc.RevealedProfile(ctx, "cand1", "co1"); !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	_ = svc.OptIn(ctx, "cand1", "co1")
	p, err := svc.RevealedProfile(ctx, "cand1", "co1")
	if err != nil {
		t.Fatalf("RevealedProfile: %v", err)
	}
	if p.Email != "ada@example.com" {
		t.Errorf("profile = %+v", p)
	}

	_ = svc.OptIn(ctx, "ghost", "co1")
	if _, err := svc.RevealedProfile(ctx, "ghost", "co1"); !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestAnonymousHandle_CachedPerDay(t *testing.T) {
	t.Parallel()
	svc, _, _ := newPrivacyHarness(t)

	h := svc.AnonymousHandle("cand1", "co1")
	if h != matching.AnonymousHandle("cand1", "co1", testNow) {
		t.Fatalf("handle %q differs from the pure derivation", h)
	}
	if svc.handles.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", svc.handles.Len())
	}
	if again := svc.AnonymousHandle("cand1", "co1"); again != h {
		t.Errorf("cached handle changed: %q vs %q", again, h)
	}

	svc.now = func() time.Time { return testNow.Add(24 * time.Hour) }
	next := svc.AnonymousHandle("cand1", "co1")
	if next != matching.AnonymousHandle("cand1", "co1", testNow.Add(24*time.Hour)) {
		t.Errorf("next-day handle %q not derived from the new day", next)
	}

	svc.PurgeHandles()
	if svc.handles.Len() != 0 {
		t.Errorf("cache len after purge = %d", svc.handles.Len())
	}
}

func TestAnonymousHandle_CacheIsBounded(t *testing.T) {
	t.Parallel()
	svc, _, _ := newPrivacyHarness(t)

	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		svc.AnonymousHandle(id, "co1")
	}
	if svc.handles.Len() != 4 {
		t.Errorf("cache len = %d, want capacity 4", svc.handles.Len())
	}
}

func TestRevealHistories(t *testing.T) {
	t.Parallel()
	svc, _, _ := newPrivacyHarness(t)
	ctx := context.Background()

	_ = svc.OptIn(ctx, "cand1", "co1")
	_ = svc.OptIn(ctx, "cand1", "co2")
	_ = svc.OptIn(ctx, "cand2", "co1")
	_ = svc.OptOut(ctx, "cand2", "co1")

	byCompany, err := svc.CompanyRevealHistory(ctx, "co1")
	if err != nil || len(byCompany) != 1 || byCompany[0].CandidateID != "cand1" {
		t.Errorf("company history = %+v, %v", byCompany, err)
	}
	byCandidate, err := svc.CandidateRevealHistory(ctx, "cand1")
	if err != nil || len(byCandidate) != 2 {
		t.Errorf("candidate history = %+v, %v", byCandidate, err)
	}
}
