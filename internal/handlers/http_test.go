package handlers_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/michal995/ticketrush/internal/errors"
	"github.com/michal995/ticketrush/internal/handlers"
)

func TestAPIError_Error(t *testing.T) {
	err := handlers.NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "test message")

	if err.Error() != "test message" {
		t.Errorf("expected 'test message', got %q", err.Error())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("expected code 'BAD_REQUEST', got %q", err.Code)
	}
}

func TestBadRequest(t *testing.T) {
	err := handlers.BadRequest("invalid input")

	if err.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.Status)
	}
	if err.Message != "invalid input" {
		t.Errorf("expected message 'invalid input', got %q", err.Message)
	}
}

func TestConflict(t *testing.T) {
	err := handlers.Conflict("already exists")

	if err.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", err.Status)
	}
	if err.Code != "CONFLICT" {
		t.Errorf("expected code 'CONFLICT', got %q", err.Code)
	}
}

func TestToAPIError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        errors.NotFound("session not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid input",
			err:        errors.InvalidInput("player name is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "policy",
			err:        errors.Policy("tickets are locked"),
			wantStatus: http.StatusConflict,
			wantCode:   "RULE_VIOLATION",
		},
		{
			name:       "conflict",
			err:        errors.Conflict("session already exists"),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "internal",
			err:        errors.Internal(stderrors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "plain error",
			err:        stderrors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := handlers.ToAPIError(tc.err)
			if apiErr.Status != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, apiErr.Status)
			}
			if apiErr.Code != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, apiErr.Code)
			}
		})
	}
}

func TestToAPIError_WrappedError(t *testing.T) {
	inner := errors.NotFound("missing")
	wrapped := stderrors.Join(stderrors.New("context"), inner)

	apiErr := handlers.ToAPIError(wrapped)
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("expected wrapped not-found to map to 404, got %d", apiErr.Status)
	}
}
