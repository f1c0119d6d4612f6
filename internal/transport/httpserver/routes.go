package httpserver

import (
	"net/http"
	"time"

	"pt-scheduler-go/internal/config"
	"pt-scheduler-go/internal/transport/httpserver/handler"
	authmw "pt-scheduler-go/internal/transport/httpserver/middleware"
	"pt-scheduler-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	tokenAuth := authmw.NewTokenAuth(cfg.JWT.Secret, handlers.Users, log)
	roleGuard := authmw.NewRoleGuard(handlers.Roster, log)
	rateLimiter := authmw.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// credential endpoints are the only unauthenticated writes
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.Middleware)
			r.Post("/users", handlers.Register)
			r.Post("/users/login", handlers.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(tokenAuth.Middleware)

			r.Get("/users/me", handlers.Me)
			r.Patch("/users/me", handlers.UpdateMe)
			r.Delete("/users/me", handlers.DeleteMe)

			r.Route("/member", func(r chi.Router) {
				r.Use(roleGuard.RequireMember)

				r.Get("/trainers", handlers.MemberTrainers)
				r.Get("/schedules", handlers.MemberSchedules)
				r.Post("/schedules/propose", handlers.MemberPropose)
				r.Put("/schedules/{scheduleId}/accept", handlers.MemberAccept)
				r.Put("/schedules/{scheduleId}/reject", handlers.MemberReject)
				r.Delete("/schedules/{scheduleId}/cancel", handlers.MemberCancel)
			})

			r.Route("/trainer", func(r chi.Router) {
				r.Use(roleGuard.RequireTrainer)

				r.Get("/members", handlers.TrainerListMembers)
				r.Post("/members/{memberId}", handlers.TrainerAddMember)
				r.Get("/members/{memberId}", handlers.TrainerGetMember)
				r.Get("/schedules", handlers.TrainerSchedules)
				r.Post("/schedules/propose", handlers.TrainerPropose)
				r.Put("/schedules/{scheduleId}/accept", handlers.TrainerAccept)
				r.Put("/schedules/{scheduleId}/reject", handlers.TrainerReject)
				r.Delete("/schedules/{scheduleId}/cancel", handlers.TrainerCancel)
			})
		})
	})

	return r
}
