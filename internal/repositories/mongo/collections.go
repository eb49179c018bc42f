package mongo

// Collection names shared with config.EnsureMongoIndexes.
const (
	CollCandidates          = "candidates"
	CollCompanies           = "companies"
	CollSprints             = "sprints"
	CollCandidateAttributes = "candidate_attributes"
	CollCandidatePrivacy    = "candidate_privacy"
	CollInterviews          = "interviews"
	CollRecommendations     = "recommendations"
	CollMatchAudit          = "match_audit"
	CollMatchEvents         = "match_events"
	CollFairnessMetrics     = "fairness_metrics"
)
