package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "request.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestReadMatchRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid",
			body: `
company_id: co-1
role:
  title: Backend Engineer
  seniority: senior
  must_have: [go, postgres]
filters:
  timezone_overlap: "+01:00..+03:00"
  max_candidates: 10
`,
		},
		{
			name:    "missing company",
			body:    "role:\n  title: Backend\n",
			wantErr: true,
		},
		{
			name: "bad seniority",
			body: `
company_id: co-1
role:
  title: Backend
  seniority: wizard
`,
			wantErr: true,
		},
		{
			name: "bad timezone range",
			body: `
company_id: co-1
role:
  title: Backend
filters:
  timezone_overlap: "+03:00..+01:00"
`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			body:    "company_id: [",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req, err := readMatchRequest(writeFile(t, tc.body))
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if req.CompanyID != "co-1" || len(req.Role.MustHave) != 2 || req.Filters.Limit() != 10 {
				t.Fatalf("unexpected request: %+v", req)
			}
		})
	}
}
