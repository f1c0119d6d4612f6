package app

import (
	"net/http"

	"pt-scheduler-go/internal/config"
	"pt-scheduler-go/internal/db"
	rosterdomain "pt-scheduler-go/internal/domain/roster"
	scheduledomain "pt-scheduler-go/internal/domain/schedule"
	userdomain "pt-scheduler-go/internal/domain/user"
	rosterrepo "pt-scheduler-go/internal/repository/postgres/roster"
	schedulerepo "pt-scheduler-go/internal/repository/postgres/schedule"
	userrepo "pt-scheduler-go/internal/repository/postgres/user"
	"pt-scheduler-go/internal/transport/httpserver"
	"pt-scheduler-go/internal/transport/httpserver/handler"
	"pt-scheduler-go/pkg/logger"

	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	roster := rosterdomain.NewService(rosterrepo.NewPostgres(dbConn))
	schedules := scheduledomain.NewService(schedulerepo.NewPostgres(dbConn), roster)

	handlers := handler.New(users, roster, schedules, cfg.JWT, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
