package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pt-scheduler-go/internal/auth"
	rosterdomain "pt-scheduler-go/internal/domain/roster"
	userdomain "pt-scheduler-go/internal/domain/user"
	"pt-scheduler-go/pkg/logger"
)

const testSecret = "test-secret"

type fakeUserSource struct {
	users map[string]*userdomain.User
}

func (s *fakeUserSource) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return u, nil
}

type fakeRoleResolver struct {
	memberCalls  int
	trainerCalls int
}

func (r *fakeRoleResolver) EnsureMember(ctx context.Context, userID string) (*rosterdomain.Member, error) {
	r.memberCalls++
	return &rosterdomain.Member{ID: "member-of-" + userID, UserID: userID}, nil
}

func (r *fakeRoleResolver) EnsureTrainer(ctx context.Context, userID string) (*rosterdomain.Trainer, error) {
	r.trainerCalls++
	return &rosterdomain.Trainer{ID: "trainer-of-" + userID, UserID: userID}, nil
}

func testUsers() *fakeUserSource {
	return &fakeUserSource{users: map[string]*userdomain.User{
		"u-member":  {ID: "u-member", Username: "kim", Role: userdomain.RoleMember},
		"u-trainer": {ID: "u-trainer", Username: "lee", Role: userdomain.RoleTrainer},
	}}
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := auth.MakeToken(userID, role, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	return token
}

func TestTokenAuthHeaderAndQuery(t *testing.T) {
	ta := NewTokenAuth(testSecret, testUsers(), logger.NewNop())
	var gotUser *userdomain.User
	handler := ta.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token := signToken(t, "u-member", "MEMBER")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("header token: expected 200, got %d", rec.Code)
	}
	if gotUser == nil || gotUser.ID != "u-member" {
		t.Fatalf("expected user u-member in context, got %+v", gotUser)
	}

	gotUser = nil
	req = httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query token: expected 200, got %d", rec.Code)
	}
	if gotUser == nil || gotUser.ID != "u-member" {
		t.Fatalf("expected user u-member in context, got %+v", gotUser)
	}
}

func TestTokenAuthRejects(t *testing.T) {
	ta := NewTokenAuth(testSecret, testUsers(), logger.NewNop())
	handler := ta.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no token", func(r *http.Request) {}},
		{"garbage token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not-a-jwt")
		}},
		{"wrong secret", func(r *http.Request) {
			token, err := auth.MakeToken("u-member", "MEMBER", "other-secret", time.Hour)
			if err != nil {
				t.Fatalf("make token: %v", err)
			}
			r.Header.Set("Authorization", "Bearer "+token)
		}},
		{"deleted user", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, "u-gone", "MEMBER"))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRoleGuardDispatch(t *testing.T) {
	ta := NewTokenAuth(testSecret, testUsers(), logger.NewNop())
	roles := &fakeRoleResolver{}
	guard := NewRoleGuard(roles, logger.NewNop())

	var gotMember *rosterdomain.Member
	memberRoute := ta.Middleware(guard.RequireMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMember, _ = MemberFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-member", "MEMBER"))
	rec := httptest.NewRecorder()
	memberRoute.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("member on member route: expected 200, got %d", rec.Code)
	}
	if gotMember == nil || gotMember.UserID != "u-member" {
		t.Fatalf("expected member entity in context, got %+v", gotMember)
	}
	if roles.memberCalls != 1 {
		t.Fatalf("expected one ensure call, got %d", roles.memberCalls)
	}

	// trainer hitting a member route is forbidden, not unauthorized
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-trainer", "TRAINER"))
	rec = httptest.NewRecorder()
	memberRoute.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("trainer on member route: expected 403, got %d", rec.Code)
	}

	trainerRoute := ta.Middleware(guard.RequireTrainer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-trainer", "TRAINER"))
	rec = httptest.NewRecorder()
	trainerRoute.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("trainer on trainer route: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u-member", "MEMBER"))
	rec = httptest.NewRecorder()
	trainerRoute.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("member on trainer route: expected 403, got %d", rec.Code)
	}
}

func TestRateLimiterThrottles(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests must pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", codes)
	}

	// a different IP has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("separate ip must not be throttled, got %d", rec.Code)
	}
}

func TestRateLimiterStop(t *testing.T) {
	rl := NewRateLimiter(1000, 1000)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rl.Stop()

	// stopping only ends the sweep; the limiter keeps serving
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("limiter must keep serving after stop, got %d", rec.Code)
	}
}
