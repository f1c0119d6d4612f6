package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pt-scheduler-go/internal/config"
	rosterdomain "pt-scheduler-go/internal/domain/roster"
	scheduledomain "pt-scheduler-go/internal/domain/schedule"
	userdomain "pt-scheduler-go/internal/domain/user"
	"pt-scheduler-go/pkg/logger"
)

func TestWriteDomainError(t *testing.T) {
	h := New(nil, nil, nil, config.JWTConfig{}, logger.NewNop())

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"schedule validation", &scheduledomain.ValidationError{Field: "location", Reason: "is required"}, http.StatusBadRequest, "validation_failed"},
		{"user validation", &userdomain.ValidationError{Field: "email", Reason: "invalid email format"}, http.StatusBadRequest, "validation_failed"},
		{"invalid credentials", userdomain.ErrInvalidCredentials, http.StatusBadRequest, "invalid_credentials"},
		{"username taken", userdomain.ErrUsernameTaken, http.StatusConflict, "username_taken"},
		{"user not found", userdomain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{"member not found", rosterdomain.ErrMemberNotFound, http.StatusNotFound, "member_not_found"},
		{"already managed", rosterdomain.ErrAlreadyManaged, http.StatusConflict, "already_managed"},
		{"not managed", rosterdomain.ErrNotManaged, http.StatusForbidden, "not_managed"},
		{"schedule not found", scheduledomain.ErrScheduleNotFound, http.StatusNotFound, "schedule_not_found"},
		{"counterparty not found", scheduledomain.ErrCounterpartyNotFound, http.StatusNotFound, "counterparty_not_found"},
		{"not participant", scheduledomain.ErrNotParticipant, http.StatusForbidden, "not_participant"},
		{"invalid transition", scheduledomain.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition"},
		{"stale status", scheduledomain.ErrStaleStatus, http.StatusConflict, "stale_status"},
		{"unmapped", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeDomainError(rec, "test op", tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}

			var envelope errorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, envelope.Error.Code)
			}
		})
	}
}

// A rejected proposal input must surface as a field-level bad request, not an
// internal error.
func TestProposeValidationMapsToBadRequest(t *testing.T) {
	h := New(nil, nil, nil, config.JWTConfig{}, logger.NewNop())

	err := &scheduledomain.ValidationError{Field: "location", Reason: "is required"}
	rec := httptest.NewRecorder()
	h.writeDomainError(rec, "schedules.propose failed", err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "validation_failed" {
		t.Fatalf("expected validation_failed, got %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "location: is required" {
		t.Fatalf("expected field message, got %q", envelope.Error.Message)
	}
}
