package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{E(CodeForbidden, "op", "no", nil), http.StatusForbidden},
		{E(CodeConflict, "op", "dup", nil), http.StatusConflict},
		{E(CodeTooManyRequests, "op", "slow down", nil), http.StatusTooManyRequests},
		{fmt.Errorf("wrapped: %w", E(CodeNotFound, "op", "missing", nil)), http.StatusNotFound},
		{ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestFromStore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want Code
	}{
		{ErrNotFound, CodeNotFound},
		{fmt.Errorf("find: %w", context.DeadlineExceeded), CodeTimeout},
		{context.Canceled, CodeUnavailable},
		{errors.New("socket closed"), CodeInternal},
	}
	for _, tc := range cases {
		err := FromStore("Repo.Get", "failed", tc.err)
		if !IsCode(err, tc.want) {
			t.Errorf("FromStore(%v) code = %s, want %s", tc.err, CodeOf(err), tc.want)
		}
		if !errors.Is(err, tc.err) {
			t.Errorf("FromStore(%v) must wrap the cause", tc.err)
		}
	}
}

func TestAppErrorMessage(t *testing.T) {
	t.Parallel()

	err := E(CodeInternal, "MatchingService.Match", "failed to load company", errors.New("timeout"))
	if got := err.Error(); got != "MatchingService.Match: failed to load company: timeout" {
		t.Errorf("Error() = %q", got)
	}
}
