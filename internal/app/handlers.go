package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/http"
	httpH "github.com/Roblokonha/StudyVault/internal/http/handlers"
	"github.com/Roblokonha/StudyVault/internal/observability"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Documents  *httpH.DocumentHandler
	Workspace  *httpH.WorkspaceHandler
	Objectives *httpH.ObjectiveHandler
	Graphs     *httpH.GraphHandler
	Recall     *httpH.RecallHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(dbPinger(db)),
		Documents:  httpH.NewDocumentHandler(log, s.Documents),
		Workspace:  httpH.NewWorkspaceHandler(log, s.Workspace),
		Objectives: httpH.NewObjectiveHandler(log, s.Objectives),
		Graphs:     httpH.NewGraphHandler(log, s.Graphs),
		Recall:     httpH.NewRecallHandler(log, s.Recall),
	}
}

func routerConfig(log *logger.Logger, cfg Config, h Handlers, m *observability.Metrics) http.RouterConfig {
	return http.RouterConfig{
		Log:              log,
		ServiceName:      cfg.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		Metrics:          m,
		HealthHandler:    h.Health,
		DocumentHandler:  h.Documents,
		WorkspaceHandler: h.Workspace,
		ObjectiveHandler: h.Objectives,
		GraphHandler:     h.Graphs,
		RecallHandler:    h.Recall,
	}
}

func dbPinger(db *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
