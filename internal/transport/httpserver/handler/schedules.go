package handler

import (
	"net/http"
	"time"

	scheduledomain "pt-scheduler-go/internal/domain/schedule"

	"github.com/go-chi/chi/v5"
)

type proposeRequest struct {
	TrainerID      string `json:"trainerId,omitempty"`
	MemberID       string `json:"memberId,omitempty"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	TrainingTarget string `json:"trainingTarget,omitempty"`
}

type scheduleResponse struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	TrainingTarget *string   `json:"trainingTarget,omitempty"`
	MemberID       string    `json:"memberId"`
	TrainerID      string    `json:"trainerId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type scheduleListResponse struct {
	Items []scheduleResponse `json:"items"`
}

type cancelResponse struct {
	Schedule scheduleResponse `json:"schedule"`
	Deleted  bool             `json:"deleted"`
}

func toScheduleResponse(s scheduledomain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:             s.ID,
		Date:           s.Date,
		Location:       s.Location,
		Status:         string(s.Status),
		TrainingTarget: s.TrainingTarget,
		MemberID:       s.MemberID,
		TrainerID:      s.TrainerID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toScheduleListResponse(items []scheduledomain.Schedule) scheduleListResponse {
	response := make([]scheduleResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toScheduleResponse(item))
	}
	return scheduleListResponse{Items: response}
}

// The member and trainer schedule routes mirror each other; these helpers take
// the acting party and its entity id, already resolved by the role guard.

func (h *Handlers) listMonth(w http.ResponseWriter, r *http.Request, party scheduledomain.Party, actorID string) {
	month, err := parseMonthRequired(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}

	items, err := h.Schedules.ListMonth(r.Context(), party, actorID, month)
	if err != nil {
		h.writeDomainError(w, "schedules.list failed", err, "party", string(party), "actor_id", actorID)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleListResponse(items))
}

func (h *Handlers) propose(w http.ResponseWriter, r *http.Request, party scheduledomain.Party, actorID string) {
	var req proposeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	counterpartyID := req.TrainerID
	if party == scheduledomain.PartyTrainer {
		counterpartyID = req.MemberID
	}
	if counterpartyID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "counterparty id is required")
		return
	}

	date, err := parseDateTimeRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date must be RFC3339")
		return
	}

	sch, err := h.Schedules.Propose(r.Context(), scheduledomain.ProposeInput{
		Party:          party,
		ActorID:        actorID,
		CounterpartyID: counterpartyID,
		Date:           date,
		Location:       req.Location,
		TrainingTarget: req.TrainingTarget,
	})
	if err != nil {
		h.writeDomainError(w, "schedules.propose failed", err, "party", string(party), "actor_id", actorID)
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleResponse(*sch))
}

func (h *Handlers) accept(w http.ResponseWriter, r *http.Request, party scheduledomain.Party, actorID string) {
	scheduleID := chi.URLParam(r, "scheduleId")
	sch, err := h.Schedules.Accept(r.Context(), party, actorID, scheduleID)
	if err != nil {
		h.writeDomainError(w, "schedules.accept failed", err, "party", string(party), "schedule_id", scheduleID)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleResponse(*sch))
}

func (h *Handlers) reject(w http.ResponseWriter, r *http.Request, party scheduledomain.Party, actorID string) {
	scheduleID := chi.URLParam(r, "scheduleId")
	sch, err := h.Schedules.Reject(r.Context(), party, actorID, scheduleID)
	if err != nil {
		h.writeDomainError(w, "schedules.reject failed", err, "party", string(party), "schedule_id", scheduleID)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleResponse(*sch))
}

func (h *Handlers) cancel(w http.ResponseWriter, r *http.Request, party scheduledomain.Party, actorID string) {
	scheduleID := chi.URLParam(r, "scheduleId")
	outcome, err := h.Schedules.Cancel(r.Context(), party, actorID, scheduleID)
	if err != nil {
		h.writeDomainError(w, "schedules.cancel failed", err, "party", string(party), "schedule_id", scheduleID)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{
		Schedule: toScheduleResponse(outcome.Schedule),
		Deleted:  outcome.Deleted,
	})
}
