package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("content: %w", perrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("slug taken: %w", perrors.ErrConflict), http.StatusConflict, "conflict"},
		{perrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_request"},
		{BadRequest("unknown_type", errors.New("x")), http.StatusBadRequest, "unknown_type"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		got := From(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("From(%v) = %d/%s, want %d/%s", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
	}
	if From(errors.New("pq: secret dsn")).Error() != "internal server error" {
		t.Fatalf("internal errors must not leak details")
	}
}
