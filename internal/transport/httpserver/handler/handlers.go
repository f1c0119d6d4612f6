package handler

import (
	"net/http"

	"pt-scheduler-go/internal/config"
	rosterdomain "pt-scheduler-go/internal/domain/roster"
	scheduledomain "pt-scheduler-go/internal/domain/schedule"
	userdomain "pt-scheduler-go/internal/domain/user"
	"pt-scheduler-go/pkg/logger"
)

type Handlers struct {
	Users     *userdomain.Service
	Roster    *rosterdomain.Service
	Schedules *scheduledomain.Service

	jwt config.JWTConfig
	log logger.Logger
}

func New(users *userdomain.Service, roster *rosterdomain.Service, schedules *scheduledomain.Service, jwt config.JWTConfig, log logger.Logger) *Handlers {
	return &Handlers{
		Users:     users,
		Roster:    roster,
		Schedules: schedules,
		jwt:       jwt,
		log:       log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
