package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/orbitmatch/internal/events"
	"github.com/yoockh/orbitmatch/internal/models"
	mongorepo "github.com/yoockh/orbitmatch/internal/repositories/mongo"
	"github.com/yoockh/orbitmatch/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
)

type RecordEventInput struct {
	RecommendationID string
	EventType        string
	Data             map[string]any
	Source           models.EventSource
	// CallerCompanyID restricts the event to the caller's own
	// recommendations. Empty for admins.
	CallerCompanyID string
}

type MatchEventService interface {
	RecordEvent(ctx context.Context, in RecordEventInput) (*models.MatchEvent, error)
	ListEvents(ctx context.Context, recommendationID string) ([]models.MatchEvent, error)
}

type matchEventService struct {
	recs   mongorepo.RecommendationRepository
	events mongorepo.EventRepository
	pub    events.Publisher
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewMatchEventService(recs mongorepo.RecommendationRepository, evs mongorepo.EventRepository, pub events.Publisher, log logrus.FieldLogger) MatchEventService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &matchEventService{
		recs:   recs,
		events: evs,
		pub:    pub,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *matchEventService) RecordEvent(ctx context.Context, in RecordEventInput) (*models.MatchEvent, error) {
	const op = "MatchEventService.RecordEvent"

	if in.RecommendationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recommendation_id is required", nil)
	}
	et, err := models.ParseEventType(in.EventType)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}
	if in.Source == "" {
		in.Source = models.SourceAPI
	}

	rec, err := s.recs.GetByID(ctx, in.RecommendationID)
	if err != nil {
		return nil, utils.FromStore(op, "recommendation not found", err)
	}
	if in.CallerCompanyID != "" && in.CallerCompanyID != rec.CompanyID {
		return nil, utils.E(utils.CodeForbidden, op, "recommendation belongs to another company", nil)
	}

	now := s.now()
	target := et.TargetStatus()
	// a repeated or late view is recorded without moving the status
	moves := !(et == models.EventView && rec.Status != models.StatusPending)
	if moves {
		if !models.IsTransitionAllowed(rec.Status, target) {
			return nil, utils.E(utils.CodeConflict, op, "cannot "+string(et)+" a "+string(rec.Status)+" recommendation", nil)
		}
		set := bson.M{}
		if fb, ok := in.Data["feedback"].(string); ok && fb != "" {
			if in.Source == models.SourceCompany {
				set["company_feedback"] = fb
			} else {
				set["candidate_feedback"] = fb
			}
		}
		if err := s.recs.Transition(ctx, rec.ID, rec.Status, target, set); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeConflict, op, "recommendation status changed concurrently", err)
			}
			return nil, utils.FromStore(op, "failed to update recommendation", err)
		}
	}

	ev := &models.MatchEvent{
		ID:               uuid.NewString(),
		RecommendationID: rec.ID,
		CompanyID:        rec.CompanyID,
		CandidateID:      rec.CandidateID,
		EventType:        et,
		EventData:        in.Data,
		Source:           in.Source,
		CreatedAt:        now,
	}
	ev.StampFunnel(now)
	if err := s.events.Insert(ctx, ev); err != nil {
		return nil, utils.FromStore(op, "failed to store event", err)
	}

	status := rec.Status
	if moves {
		status = target
	}
	log := s.log.WithFields(logrus.Fields{
		"recommendation_id": rec.ID,
		"company_id":        rec.CompanyID,
		"event_type":        et,
		"status":            status,
	})
	if err := s.pub.Publish(ctx, &models.MatchNotification{
		Type:             models.NotificationStatusChanged,
		CompanyID:        rec.CompanyID,
		RequestID:        rec.RequestID,
		RecommendationID: rec.ID,
		AnonymizedHandle: rec.AnonymizedHandle,
		EventType:        et,
		Status:           status,
		At:               now,
	}); err != nil {
		log.WithError(err).Warn("failed to publish match event")
	}
	log.Info("match event recorded")
	return ev, nil
}

func (s *matchEventService) ListEvents(ctx context.Context, recommendationID string) ([]models.MatchEvent, error) {
	const op = "MatchEventService.ListEvents"

	out, err := s.events.ListByRecommendation(ctx, recommendationID)
	if err != nil {
		return nil, utils.FromStore(op, "failed to list events", err)
	}
	return out, nil
}
