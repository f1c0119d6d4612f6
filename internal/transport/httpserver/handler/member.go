package handler

import (
	"net/http"
	"time"

	rosterdomain "pt-scheduler-go/internal/domain/roster"
	scheduledomain "pt-scheduler-go/internal/domain/schedule"
	"pt-scheduler-go/internal/transport/httpserver/middleware"
)

type relatedTrainerResponse struct {
	TrainerID   string    `json:"trainerId"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	PTStartDate time.Time `json:"ptStartDate"`
}

func toRelatedTrainerResponse(t rosterdomain.RelatedTrainer) relatedTrainerResponse {
	return relatedTrainerResponse{
		TrainerID:   t.TrainerID,
		Username:    t.Username,
		Name:        t.Name,
		Email:       t.Email,
		PhoneNumber: t.PhoneNumber,
		PTStartDate: t.PTStartDate,
	}
}

func (h *Handlers) MemberTrainers(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "member entity missing")
		return
	}

	trainers, err := h.Roster.RelatedTrainers(r.Context(), member.ID)
	if err != nil {
		h.writeDomainError(w, "member.trainers failed", err, "member_id", member.ID)
		return
	}

	response := make([]relatedTrainerResponse, 0, len(trainers))
	for _, t := range trainers {
		response = append(response, toRelatedTrainerResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": response})
}

func (h *Handlers) MemberSchedules(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "member entity missing")
		return
	}
	h.listMonth(w, r, scheduledomain.PartyMember, member.ID)
}

func (h *Handlers) MemberPropose(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "member entity missing")
		return
	}
	h.propose(w, r, scheduledomain.PartyMember, member.ID)
}

func (h *Handlers) MemberAccept(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "member entity missing")
		return
	}
	h.accept(w, r, scheduledomain.PartyMember, member.ID)
}

func (h *Handlers) MemberReject(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "member entity missing")
		return
	}
	h.reject(w, r, scheduledomain.PartyMember, member.ID)
}

func (h *Handlers) MemberCancel(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "member entity missing")
		return
	}
	h.cancel(w, r, scheduledomain.PartyMember, member.ID)
}
