package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/orbitmatch/internal/utils"
)

func forbid(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, apiError{Code: utils.CodeForbidden, Message: msg})
}

func RequireRole(allowed ...string) gin.HandlerFunc {
	allow := map[string]struct{}{}
	for _, a := range allowed {
		a = strings.TrimSpace(strings.ToLower(a))
		if a != "" {
			allow[a] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if _, ok := allow[role]; !ok || role == "" {
			forbid(c, "forbidden")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole(RoleAdmin) }

func IsAdmin(c *gin.Context) bool { return c.GetString(CtxRole) == RoleAdmin }

// RequireCompanyParam lets a company caller reach only routes whose path
// parameter equals its company_id claim. Admins pass.
func RequireCompanyParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}
		companyID := c.GetString(CtxCompanyID)
		if companyID == "" || companyID != c.Param(param) {
			forbid(c, "company mismatch")
			return
		}
		c.Next()
	}
}

// RequireSelfParam lets a candidate reach only its own resources.
func RequireSelfParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}
		if c.GetString(CtxUserID) != c.Param(param) {
			forbid(c, "candidate mismatch")
			return
		}
		c.Next()
	}
}
