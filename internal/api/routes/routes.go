package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/orbitmatch/internal/api/handlers"
	"github.com/yoockh/orbitmatch/internal/api/middleware"
)

type Deps struct {
	Auth      middleware.JWTConfig
	Limiter   *middleware.CallerLimiter
	Matching  *handlers.MatchingHandler
	Candidate *handlers.CandidateHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	auth := r.Group("/")
	auth.Use(middleware.JWTAuth(d.Auth))

	company := auth.Group("/matching")
	company.Use(middleware.RequireRole(middleware.RoleCompany, middleware.RoleAdmin))
	company.POST("/match", middleware.RateLimit(d.Limiter), d.Matching.Match)
	company.POST("/match/:recommendation_id/event", d.Matching.RecordEvent)
	company.GET("/match/company/:company_id/history", middleware.RequireCompanyParam("company_id"), d.Matching.CompanyHistory)
	company.GET("/company/:company_id/reveals", middleware.RequireCompanyParam("company_id"), d.Matching.CompanyReveals)
	company.GET("/candidates/:candidate_id/profile", d.Matching.CandidateProfile)

	auth.GET("/matching/events/:recommendation_id", middleware.RequireAdmin(), d.Matching.ListEvents)

	cand := auth.Group("/matching/candidate/:candidate_id")
	cand.Use(middleware.RequireRole(middleware.RoleCandidate, middleware.RoleAdmin), middleware.RequireSelfParam("candidate_id"))
	cand.POST("/reveal/:company_id", d.Candidate.OptIn)
	cand.DELETE("/reveal/:company_id", d.Candidate.OptOut)
	cand.POST("/opt-out/:company_id", d.Candidate.BlockCompany)
	cand.DELETE("/opt-out/:company_id", d.Candidate.UnblockCompany)
	cand.GET("/reveals", d.Candidate.Reveals)
	cand.GET("/matched-companies", d.Candidate.MatchedCompanies)

	ws := auth.Group("/ws")
	ws.Use(middleware.RequireRole(middleware.RoleCompany, middleware.RoleAdmin))
	ws.GET("/company/:company_id/matches", middleware.RequireCompanyParam("company_id"), d.WS.CompanyFeed)
}
