package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	rosterdomain "pt-scheduler-go/internal/domain/roster"
	scheduledomain "pt-scheduler-go/internal/domain/schedule"
	userdomain "pt-scheduler-go/internal/domain/user"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps service errors to HTTP responses in one place so every
// handler agrees on status codes. Anything unmapped is an internal error.
func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error, args ...any) {
	var userValidation *userdomain.ValidationError
	if errors.As(err, &userValidation) {
		h.log.BusinessError(op, err, args...)
		writeError(w, http.StatusBadRequest, "validation_failed", userValidation.Error())
		return
	}
	var scheduleValidation *scheduledomain.ValidationError
	if errors.As(err, &scheduleValidation) {
		h.log.BusinessError(op, err, args...)
		writeError(w, http.StatusBadRequest, "validation_failed", scheduleValidation.Error())
		return
	}

	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound):
		status, code = http.StatusNotFound, "user_not_found"
	case errors.Is(err, userdomain.ErrUsernameTaken):
		status, code = http.StatusConflict, "username_taken"
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		status, code = http.StatusBadRequest, "invalid_credentials"
	case errors.Is(err, rosterdomain.ErrMemberNotFound):
		status, code = http.StatusNotFound, "member_not_found"
	case errors.Is(err, rosterdomain.ErrTrainerNotFound):
		status, code = http.StatusNotFound, "trainer_not_found"
	case errors.Is(err, rosterdomain.ErrAlreadyManaged):
		status, code = http.StatusConflict, "already_managed"
	case errors.Is(err, rosterdomain.ErrNotManaged):
		status, code = http.StatusForbidden, "not_managed"
	case errors.Is(err, scheduledomain.ErrScheduleNotFound):
		status, code = http.StatusNotFound, "schedule_not_found"
	case errors.Is(err, scheduledomain.ErrCounterpartyNotFound):
		status, code = http.StatusNotFound, "counterparty_not_found"
	case errors.Is(err, scheduledomain.ErrNotParticipant):
		status, code = http.StatusForbidden, "not_participant"
	case errors.Is(err, scheduledomain.ErrInvalidTransition):
		status, code = http.StatusBadRequest, "invalid_transition"
	case errors.Is(err, scheduledomain.ErrStaleStatus):
		status, code = http.StatusConflict, "stale_status"
	}

	if status == http.StatusInternalServerError {
		h.log.InternalError(op, err, args...)
		writeError(w, status, code, "internal error")
		return
	}

	h.log.BusinessError(op, err, args...)
	writeError(w, status, code, err.Error())
}
