package handler

import (
	"net/http"
	"time"

	rosterdomain "pt-scheduler-go/internal/domain/roster"
	scheduledomain "pt-scheduler-go/internal/domain/schedule"
	"pt-scheduler-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type managedMemberResponse struct {
	MemberID    string    `json:"memberId"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	PTStartDate time.Time `json:"ptStartDate"`
}

type managedMemberListResponse struct {
	Items []managedMemberResponse `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type managedMemberDetailResponse struct {
	Member    managedMemberResponse `json:"member"`
	Schedules []scheduleResponse    `json:"schedules"`
}

type edgeResponse struct {
	TrainerID   string    `json:"trainerId"`
	MemberID    string    `json:"memberId"`
	PTStartDate time.Time `json:"ptStartDate"`
}

func toManagedMemberResponse(m rosterdomain.ManagedMember) managedMemberResponse {
	return managedMemberResponse{
		MemberID:    m.MemberID,
		Username:    m.Username,
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		PTStartDate: m.PTStartDate,
	}
}

func (h *Handlers) TrainerAddMember(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}

	memberID := chi.URLParam(r, "memberId")
	edge, err := h.Roster.AddMember(r.Context(), trainer.ID, memberID)
	if err != nil {
		h.writeDomainError(w, "trainer.add_member failed", err, "trainer_id", trainer.ID, "member_id", memberID)
		return
	}

	writeJSON(w, http.StatusCreated, edgeResponse{
		TrainerID:   edge.TrainerID,
		MemberID:    edge.MemberID,
		PTStartDate: edge.PTStartDate,
	})
}

func (h *Handlers) TrainerListMembers(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}

	query := r.URL.Query()
	page, err := parseIntParam(query.Get("page"), rosterdomain.DefaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid page")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), rosterdomain.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	items, total, err := h.Roster.ListMembers(r.Context(), trainer.ID, page, limit)
	if err != nil {
		h.writeDomainError(w, "trainer.list_members failed", err, "trainer_id", trainer.ID)
		return
	}

	if page < 1 {
		page = rosterdomain.DefaultPage
	}
	if limit < 1 {
		limit = rosterdomain.DefaultLimit
	}

	response := make([]managedMemberResponse, 0, len(items))
	for _, m := range items {
		response = append(response, toManagedMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, managedMemberListResponse{
		Items: response,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handlers) TrainerGetMember(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}

	memberID := chi.URLParam(r, "memberId")
	managed, err := h.Roster.GetManagedMember(r.Context(), trainer.ID, memberID)
	if err != nil {
		h.writeDomainError(w, "trainer.get_member failed", err, "trainer_id", trainer.ID, "member_id", memberID)
		return
	}

	history, err := h.Schedules.History(r.Context(), memberID)
	if err != nil {
		h.writeDomainError(w, "trainer.get_member: history failed", err, "member_id", memberID)
		return
	}

	schedules := make([]scheduleResponse, 0, len(history))
	for _, s := range history {
		schedules = append(schedules, toScheduleResponse(s))
	}
	writeJSON(w, http.StatusOK, managedMemberDetailResponse{
		Member:    toManagedMemberResponse(*managed),
		Schedules: schedules,
	})
}

func (h *Handlers) TrainerSchedules(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}
	h.listMonth(w, r, scheduledomain.PartyTrainer, trainer.ID)
}

func (h *Handlers) TrainerPropose(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}
	h.propose(w, r, scheduledomain.PartyTrainer, trainer.ID)
}

func (h *Handlers) TrainerAccept(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}
	h.accept(w, r, scheduledomain.PartyTrainer, trainer.ID)
}

func (h *Handlers) TrainerReject(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}
	h.reject(w, r, scheduledomain.PartyTrainer, trainer.ID)
}

func (h *Handlers) TrainerCancel(w http.ResponseWriter, r *http.Request) {
	trainer, ok := middleware.TrainerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden", "trainer entity missing")
		return
	}
	h.cancel(w, r, scheduledomain.PartyTrainer, trainer.ID)
}
