package models

import (
	"fmt"
	"time"
)

// MatchAudit is written once per (request_id, candidate_id) and never updated.
type MatchAudit struct {
	ID               string `bson:"_id" json:"id"`
	RecommendationID string `bson:"recommendation_id" json:"recommendation_id"`
	CompanyID        string `bson:"company_id" json:"company_id"`
	CandidateID      string `bson:"candidate_id" json:"candidate_id"`
	RequestID        string `bson:"request_id" json:"request_id"`

	Scores              map[string]float64 `bson:"scores" json:"scores"`
	FeatureValues       map[string]float64 `bson:"feature_values,omitempty" json:"feature_values,omitempty"`
	RankingReasons      []string           `bson:"ranking_reasons,omitempty" json:"ranking_reasons,omitempty"`
	Rank                int                `bson:"rank" json:"rank"`
	ModelVersion        string             `bson:"model_version" json:"model_version"`
	FeatureVersion      string             `bson:"feature_version" json:"feature_version"`
	WeightsSnapshot     map[string]float64 `bson:"weights_snapshot" json:"weights_snapshot"`
	FairnessAdjustments map[string]float64 `bson:"fairness_adjustments,omitempty" json:"fairness_adjustments,omitempty"`

	EncryptedDetails string `bson:"encrypted_details,omitempty" json:"-"`

	ActorID   string    `bson:"actor_id" json:"actor_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type EventType string

const (
	EventView      EventType = "view"
	EventInvite    EventType = "invite"
	EventAccept    EventType = "accept"
	EventReject    EventType = "reject"
	EventInterview EventType = "interview"
	EventHire      EventType = "hire"
)

func ParseEventType(s string) (EventType, error) {
	e := EventType(s)
	switch e {
	case EventView, EventInvite, EventAccept, EventReject, EventInterview, EventHire:
		return e, nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// TargetStatus is the recommendation status an event moves to.
func (e EventType) TargetStatus() RecommendationStatus {
	switch e {
	case EventView:
		return StatusViewed
	case EventInvite:
		return StatusInvited
	case EventAccept:
		return StatusAccepted
	case EventReject:
		return StatusRejected
	case EventInterview:
		return StatusInterviewing
	case EventHire:
		return StatusHired
	}
	return ""
}

type EventSource string

const (
	SourceCompany   EventSource = "company"
	SourceCandidate EventSource = "candidate"
	SourceAPI       EventSource = "api"
	SourceAuto      EventSource = "auto"
)

type MatchEvent struct {
	ID               string `bson:"_id" json:"id"`
	RecommendationID string `bson:"recommendation_id" json:"recommendation_id"`
	CompanyID        string `bson:"company_id" json:"company_id"`
	CandidateID      string `bson:"candidate_id" json:"candidate_id"`

	EventType EventType      `bson:"event_type" json:"event_type"`
	EventData map[string]any `bson:"event_data,omitempty" json:"event_data,omitempty"`
	Source    EventSource    `bson:"source" json:"source"`

	// funnel timestamps, one per event type
	ViewedAt    *time.Time `bson:"viewed_at,omitempty" json:"viewed_at,omitempty"`
	InvitedAt   *time.Time `bson:"invited_at,omitempty" json:"invited_at,omitempty"`
	RespondedAt *time.Time `bson:"responded_at,omitempty" json:"responded_at,omitempty"`
	InterviewAt *time.Time `bson:"interview_at,omitempty" json:"interview_at,omitempty"`
	HiredAt     *time.Time `bson:"hired_at,omitempty" json:"hired_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// StampFunnel sets the timestamp field matching the event type.
func (e *MatchEvent) StampFunnel(at time.Time) {
	t := at.UTC()
	switch e.EventType {
	case EventView:
		e.ViewedAt = &t
	case EventInvite:
		e.InvitedAt = &t
	case EventAccept, EventReject:
		e.RespondedAt = &t
	case EventInterview:
		e.InterviewAt = &t
	case EventHire:
		e.HiredAt = &t
	}
}
