package app

import (
	"time"

	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
	"github.com/Roblokonha/StudyVault/internal/learning/breakdown"
	"github.com/Roblokonha/StudyVault/internal/learning/recall"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/services"
)

type Services struct {
	Documents  services.DocumentService
	Workspace  services.WorkspaceService
	Objectives services.ObjectiveService
	Graphs     services.GraphService
	Recall     services.RecallService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r repos.Repos, clients Clients) Services {
	log.Info("Wiring services...")
	runner := aggregates.NewGormTxRunner(db, aggregates.WithRetries(cfg.TxRetries, 25*time.Millisecond))
	return Services{
		Documents:  services.NewDocumentService(db, log, runner, r, extractor.New(log), clients.Cache),
		Workspace:  services.NewWorkspaceService(db, log, runner, r, breakdown.Default(log), clients.Cache),
		Objectives: services.NewObjectiveService(db, log, runner, r),
		Graphs:     services.NewGraphService(db, log, r, clients.Cache, clients.Neo4j, services.NewSeededStyler(cfg.GraphSeed)),
		Recall:     services.NewRecallService(db, log, r, recall.NewSeededGenerator(cfg.RecallSeed)),
	}
}
