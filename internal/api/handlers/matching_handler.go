package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/orbitmatch/internal/api/middleware"
	"github.com/yoockh/orbitmatch/internal/models"
	"github.com/yoockh/orbitmatch/internal/services"
	"github.com/yoockh/orbitmatch/internal/utils"
)

type MatchingHandler struct {
	matching services.MatchingService
	events   services.MatchEventService
	privacy  services.PrivacyService
}

func NewMatchingHandler(matching services.MatchingService, events services.MatchEventService, privacy services.PrivacyService) *MatchingHandler {
	return &MatchingHandler{matching: matching, events: events, privacy: privacy}
}

// Match handles POST /matching/match.
func (h *MatchingHandler) Match(c *gin.Context) {
	const op = "MatchingHandler.Match"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body: "+err.Error(), err))
		return
	}
	if !middleware.IsAdmin(c) && req.CompanyID != c.GetString(middleware.CtxCompanyID) {
		writeError(c, utils.E(utils.CodeForbidden, op, "company mismatch", nil))
		return
	}

	resp, err := h.matching.Match(c.Request.Context(), &req, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.CtxMatchResults, len(resp.Results))
	c.JSON(http.StatusOK, resp)
}

type RecordEventRequest struct {
	EventType string             `json:"event_type" binding:"required,oneof=view invite accept reject interview hire"`
	EventData map[string]any     `json:"event_data"`
	Source    models.EventSource `json:"source" binding:"omitempty,oneof=company candidate api auto"`
}

// RecordEvent handles POST /matching/match/:recommendation_id/event.
func (h *MatchingHandler) RecordEvent(c *gin.Context) {
	const op = "MatchingHandler.RecordEvent"

	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	in := services.RecordEventInput{
		RecommendationID: c.Param("recommendation_id"),
		EventType:        req.EventType,
		Data:             req.EventData,
		Source:           models.SourceCompany,
	}
	if middleware.IsAdmin(c) {
		in.Source = req.Source
	} else {
		in.CallerCompanyID = c.GetString(middleware.CtxCompanyID)
		if in.CallerCompanyID == "" {
			writeError(c, utils.E(utils.CodeForbidden, op, "company claim required", nil))
			return
		}
	}

	ev, err := h.events.RecordEvent(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded", "event": ev})
}

// ListEvents handles GET /matching/events/:recommendation_id (admin).
func (h *MatchingHandler) ListEvents(c *gin.Context) {
	out, err := h.events.ListEvents(c.Request.Context(), c.Param("recommendation_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// CompanyHistory handles GET /matching/match/company/:company_id/history.
func (h *MatchingHandler) CompanyHistory(c *gin.Context) {
	out, err := h.matching.CompanyHistory(c.Request.Context(), c.Param("company_id"), queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": out})
}

// CompanyReveals handles GET /matching/company/:company_id/reveals.
func (h *MatchingHandler) CompanyReveals(c *gin.Context) {
	out, err := h.privacy.CompanyRevealHistory(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reveals": out})
}

// CandidateProfile handles GET /matching/candidates/:candidate_id/profile.
func (h *MatchingHandler) CandidateProfile(c *gin.Context) {
	const op = "MatchingHandler.CandidateProfile"

	companyID := callerCompany(c)
	if companyID == "" {
		writeError(c, utils.E(utils.CodeForbidden, op, "company claim required", nil))
		return
	}

	p, err := h.privacy.RevealedProfile(c.Request.Context(), c.Param("candidate_id"), companyID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
