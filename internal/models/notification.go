package models

import "time"

type NotificationType string

const (
	NotificationMatchGenerated NotificationType = "match_generated"
	NotificationStatusChanged  NotificationType = "status_changed"
)

// MatchNotification is queued on the event stream and fanned out to the
// company feed. It never carries candidate ids, only handles.
type MatchNotification struct {
	Type             NotificationType     `json:"type"`
	CompanyID        string               `json:"company_id"`
	RequestID        string               `json:"request_id,omitempty"`
	RecommendationID string               `json:"recommendation_id,omitempty"`
	AnonymizedHandle string               `json:"anonymized_handle,omitempty"`
	EventType        EventType            `json:"event_type,omitempty"`
	Status           RecommendationStatus `json:"status,omitempty"`
	Results          int                  `json:"results,omitempty"`
	At               time.Time            `json:"at"`
}

// MatchedCompany is the candidate-facing view of a recommendation.
type MatchedCompany struct {
	RecommendationID string               `json:"recommendation_id"`
	CompanyID        string               `json:"company_id"`
	CompanyName      string               `json:"company_name,omitempty"`
	RoleTitle        string               `json:"role_title,omitempty"`
	Status           RecommendationStatus `json:"status"`
	RevealAllowed    bool                 `json:"reveal_allowed"`
	MatchedAt        time.Time            `json:"matched_at"`
}
