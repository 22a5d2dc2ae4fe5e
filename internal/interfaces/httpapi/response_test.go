package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"foccacia/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
		wantCode   string
	}{
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: group name is required", usecase.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidInput",
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: group=group-1", usecase.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantReason: "notFound",
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unauthorized",
			err:        usecase.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantReason: "unauthorized",
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:       "forbidden",
			err:        fmt.Errorf("%w: group=group-1", usecase.ErrForbidden),
			wantStatus: http.StatusForbidden,
			wantReason: "forbidden",
			wantCode:   "PERMISSION_DENIED",
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("%w: team=33", usecase.ErrConflict),
			wantStatus: http.StatusConflict,
			wantReason: "conflict",
			wantCode:   "ALREADY_EXISTS",
		},
		{
			name:       "lookup failed",
			err:        fmt.Errorf("%w: team id=33", usecase.ErrLookupFailed),
			wantStatus: http.StatusBadGateway,
			wantReason: "lookupFailed",
			wantCode:   "BAD_GATEWAY",
		},
		{
			name:       "store unavailable",
			err:        fmt.Errorf("%w: put document", usecase.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantReason: "storeUnavailable",
			wantCode:   "UNAVAILABLE",
		},
		{
			name:       "unknown error",
			err:        errors.New("something else"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "internalError",
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err)
			if mapped.HTTPStatus != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, mapped.HTTPStatus)
			}
			if mapped.Reason != tt.wantReason {
				t.Fatalf("expected reason %s, got %s", tt.wantReason, mapped.Reason)
			}
			if mapped.Status != tt.wantCode {
				t.Fatalf("expected status code %s, got %s", tt.wantCode, mapped.Status)
			}
		})
	}
}
