package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/orbitmatch/internal/services"
)

type CandidateHandler struct {
	candidates services.CandidateService
	privacy    services.PrivacyService
}

func NewCandidateHandler(candidates services.CandidateService, privacy services.PrivacyService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, privacy: privacy}
}

// OptIn handles POST /matching/candidate/:candidate_id/reveal/:company_id.
func (h *CandidateHandler) OptIn(c *gin.Context) {
	if err := h.privacy.OptIn(c.Request.Context(), c.Param("candidate_id"), c.Param("company_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revealed"})
}

// OptOut handles DELETE /matching/candidate/:candidate_id/reveal/:company_id.
func (h *CandidateHandler) OptOut(c *gin.Context) {
	if err := h.privacy.OptOut(c.Request.Context(), c.Param("candidate_id"), c.Param("company_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "hidden"})
}

// Reveals handles GET /matching/candidate/:candidate_id/reveals.
func (h *CandidateHandler) Reveals(c *gin.Context) {
	out, err := h.privacy.CandidateRevealHistory(c.Request.Context(), c.Param("candidate_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reveals": out})
}

// BlockCompany handles POST /matching/candidate/:candidate_id/opt-out/:company_id.
func (h *CandidateHandler) BlockCompany(c *gin.Context) {
	closed, err := h.candidates.BlockCompany(c.Request.Context(), c.Param("candidate_id"), c.Param("company_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "opted_out", "closed_recommendations": closed})
}

// UnblockCompany handles DELETE /matching/candidate/:candidate_id/opt-out/:company_id.
func (h *CandidateHandler) UnblockCompany(c *gin.Context) {
	if err := h.candidates.UnblockCompany(c.Request.Context(), c.Param("candidate_id"), c.Param("company_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "opted_in"})
}

// MatchedCompanies handles GET /matching/candidate/:candidate_id/matched-companies.
func (h *CandidateHandler) MatchedCompanies(c *gin.Context) {
	out, err := h.candidates.MatchedCompanies(c.Request.Context(), c.Param("candidate_id"), queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": out})
}
