package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func asCaller(userID, role, companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Set(CtxCompanyID, companyID)
		c.Next()
	}
}

func ok(c *gin.Context) { c.Status(http.StatusNoContent) }

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role string
		want int
	}{
		{RoleCompany, http.StatusNoContent},
		{RoleAdmin, http.StatusNoContent},
		{RoleCandidate, http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tc := range tests {
		r := gin.New()
		r.GET("/x", asCaller("u1", tc.role, ""), RequireRole(" Company ", RoleAdmin), ok)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != tc.want {
			t.Fatalf("role %q: status=%d want %d", tc.role, w.Code, tc.want)
		}
	}
}

func TestRequireCompanyParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		role      string
		companyID string
		path      string
		want      int
	}{
		{"own company", RoleCompany, "co-1", "/companies/co-1", http.StatusNoContent},
		{"other company", RoleCompany, "co-1", "/companies/co-2", http.StatusForbidden},
		{"no claim", RoleCompany, "", "/companies/co-1", http.StatusForbidden},
		{"admin", RoleAdmin, "", "/companies/co-2", http.StatusNoContent},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.GET("/companies/:company_id", asCaller("u1", tc.role, tc.companyID), RequireCompanyParam("company_id"), ok)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("status=%d want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRequireSelfParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID string
		role   string
		path   string
		want   int
	}{
		{"self", "c1", RoleCandidate, "/candidates/c1", http.StatusNoContent},
		{"someone else", "c1", RoleCandidate, "/candidates/c2", http.StatusForbidden},
		{"admin", "root", RoleAdmin, "/candidates/c2", http.StatusNoContent},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.GET("/candidates/:candidate_id", asCaller(tc.userID, tc.role, ""), RequireSelfParam("candidate_id"), ok)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("status=%d want %d", w.Code, tc.want)
			}
		})
	}
}
