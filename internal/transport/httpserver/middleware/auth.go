package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pt-scheduler-go/internal/auth"
	rosterdomain "pt-scheduler-go/internal/domain/roster"
	userdomain "pt-scheduler-go/internal/domain/user"
	"pt-scheduler-go/pkg/logger"
)

type contextKey int

const (
	userKey contextKey = iota
	memberKey
	trainerKey
)

// UserSource loads the authenticated user record behind a verified token.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// RoleResolver turns a user into its role entity, creating it on first use.
type RoleResolver interface {
	EnsureMember(ctx context.Context, userID string) (*rosterdomain.Member, error)
	EnsureTrainer(ctx context.Context, userID string) (*rosterdomain.Trainer, error)
}

type TokenAuth struct {
	secret string
	users  UserSource
	log    logger.Logger
}

func NewTokenAuth(secret string, users UserSource, log logger.Logger) *TokenAuth {
	return &TokenAuth{secret: secret, users: users, log: log}
}

// Middleware verifies the JWT and loads the user. The token comes from the
// Authorization header, with a query fallback for clients that cannot set
// headers.
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			token = strings.TrimSpace(r.URL.Query().Get("token"))
		}
		if token == "" {
			unauthorized(w)
			return
		}

		claims, err := auth.ParseToken(token, a.secret)
		if err != nil {
			unauthorized(w)
			return
		}

		u, err := a.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			// a valid token for a deleted user is still unauthorized
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleGuard gates role-scoped route groups and resolves the role entity once,
// so handlers downstream work with entity ids only.
type RoleGuard struct {
	roles RoleResolver
	log   logger.Logger
}

func NewRoleGuard(roles RoleResolver, log logger.Logger) *RoleGuard {
	return &RoleGuard{roles: roles, log: log}
}

func (g *RoleGuard) RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if u.Role != userdomain.RoleMember {
			forbidden(w)
			return
		}

		m, err := g.roles.EnsureMember(r.Context(), u.ID)
		if err != nil {
			g.log.InternalError("auth: ensure member failed", err, "user_id", u.ID)
			internalError(w)
			return
		}

		ctx := context.WithValue(r.Context(), memberKey, m)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *RoleGuard) RequireTrainer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if u.Role != userdomain.RoleTrainer {
			forbidden(w)
			return
		}

		t, err := g.roles.EnsureTrainer(r.Context(), u.ID)
		if err != nil {
			g.log.InternalError("auth: ensure trainer failed", err, "user_id", u.ID)
			internalError(w)
			return
		}

		ctx := context.WithValue(r.Context(), trainerKey, t)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	u, ok := ctx.Value(userKey).(*userdomain.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

func MemberFromContext(ctx context.Context) (*rosterdomain.Member, bool) {
	m, ok := ctx.Value(memberKey).(*rosterdomain.Member)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

func TrainerFromContext(ctx context.Context) (*rosterdomain.Trainer, bool) {
	t, ok := ctx.Value(trainerKey).(*rosterdomain.Trainer)
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func forbidden(w http.ResponseWriter) {
	writeError(w, http.StatusForbidden, "forbidden", "role does not allow this resource")
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
