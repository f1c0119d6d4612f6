package handler

import (
	"net/http"
	"time"

	"pt-scheduler-go/internal/auth"
	userdomain "pt-scheduler-go/internal/domain/user"
	"pt-scheduler-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Password    *string `json:"password"`
	PhoneNumber *string `json:"phoneNumber"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	u, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Name:        req.Name,
		Role:        userdomain.Role(req.Role),
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.writeDomainError(w, "users.register failed", err, "username", req.Username)
		return
	}

	// the role entity is created eagerly so the first role-scoped request
	// does not pay for it
	switch u.Role {
	case userdomain.RoleMember:
		_, err = h.Roster.EnsureMember(r.Context(), u.ID)
	case userdomain.RoleTrainer:
		_, err = h.Roster.EnsureTrainer(r.Context(), u.ID)
	}
	if err != nil {
		h.writeDomainError(w, "users.register: ensure role entity failed", err, "user_id", u.ID)
		return
	}

	token, err := auth.MakeToken(u.ID, string(u.Role), h.jwt.Secret, h.jwt.TTL)
	if err != nil {
		h.log.InternalError("users.register: sign token failed", err, "user_id", u.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserResponse(u)})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	u, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeDomainError(w, "users.login failed", err, "username", req.Username)
		return
	}

	token, err := auth.MakeToken(u.ID, string(u.Role), h.jwt.Secret, h.jwt.TTL)
	if err != nil {
		h.log.InternalError("users.login: sign token failed", err, "user_id", u.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(u)})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Users.Update(r.Context(), u.ID, userdomain.UpdateInput{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.writeDomainError(w, "users.update failed", err, "user_id", u.ID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func (h *Handlers) DeleteMe(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Users.Delete(r.Context(), u.ID); err != nil {
		h.writeDomainError(w, "users.delete failed", err, "user_id", u.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
