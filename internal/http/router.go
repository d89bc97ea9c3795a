package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Roblokonha/StudyVault/internal/http/handlers"
	httpMW "github.com/Roblokonha/StudyVault/internal/http/middleware"
	"github.com/Roblokonha/StudyVault/internal/observability"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	HealthHandler    *httpH.HealthHandler
	DocumentHandler  *httpH.DocumentHandler
	WorkspaceHandler *httpH.WorkspaceHandler
	ObjectiveHandler *httpH.ObjectiveHandler
	GraphHandler     *httpH.GraphHandler
	RecallHandler    *httpH.RecallHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "studyvault"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")

	// Documents
	if cfg.DocumentHandler != nil {
		api.GET("/documents", cfg.DocumentHandler.List)
		api.POST("/documents", cfg.DocumentHandler.Create)
		api.POST("/documents/upload", cfg.DocumentHandler.Upload)
		api.GET("/documents/:id", cfg.DocumentHandler.Get)
		api.PUT("/documents/:id/summary", cfg.DocumentHandler.UpdateSummary)
		api.DELETE("/documents/:id", cfg.DocumentHandler.Delete)
	}

	// Workspace items, relations and merge
	if cfg.WorkspaceHandler != nil {
		api.GET("/documents/:id/workspace", cfg.WorkspaceHandler.Tree)
		api.POST("/documents/:id/workspace-items", cfg.WorkspaceHandler.CreateItem)
		api.POST("/documents/:id/auto-breakdown", cfg.WorkspaceHandler.AutoBreakdown)
		api.GET("/documents/:id/workspace-items/:item_id", cfg.WorkspaceHandler.GetItem)
		api.PATCH("/documents/:id/workspace-items/:item_id", cfg.WorkspaceHandler.UpdateItem)
		api.PUT("/documents/:id/workspace-items/:item_id/user-content", cfg.WorkspaceHandler.UpdateUserContent)
		api.PUT("/documents/:id/workspace-items/:item_id/labels", cfg.WorkspaceHandler.UpdateLabels)
		api.PUT("/documents/:id/workspace-items/:item_id/parent", cfg.WorkspaceHandler.MoveItem)
		api.DELETE("/documents/:id/workspace-items/:item_id", cfg.WorkspaceHandler.DeleteItem)

		api.GET("/documents/:id/relations", cfg.WorkspaceHandler.ListRelations)
		api.POST("/documents/:id/relations", cfg.WorkspaceHandler.CreateRelation)
		api.DELETE("/documents/:id/relations/:relation_id", cfg.WorkspaceHandler.DeleteRelation)

		api.GET("/documents/:id/merge-candidates", cfg.WorkspaceHandler.MergeCandidates)
		api.POST("/documents/:id/merge", cfg.WorkspaceHandler.Merge)
	}

	// Graph exports
	if cfg.GraphHandler != nil {
		api.GET("/documents/:id/graph", cfg.GraphHandler.Graph)
		api.GET("/documents/:id/network", cfg.GraphHandler.Network)
		api.GET("/documents/:id/network.png", cfg.GraphHandler.NetworkPNG)
		api.POST("/documents/:id/graph/sync", cfg.GraphHandler.Sync)
	}

	// Objectives
	if cfg.ObjectiveHandler != nil {
		api.GET("/documents/:id/objectives", cfg.ObjectiveHandler.Tree)
		api.POST("/documents/:id/objectives", cfg.ObjectiveHandler.Add)
		api.PUT("/documents/:id/objectives/:objective_id/toggle", cfg.ObjectiveHandler.Toggle)
		api.DELETE("/documents/:id/objectives/:objective_id", cfg.ObjectiveHandler.Delete)

		api.GET("/objectives", cfg.ObjectiveHandler.Tree)
		api.POST("/objectives", cfg.ObjectiveHandler.Add)
		api.PUT("/objectives/:objective_id/toggle", cfg.ObjectiveHandler.Toggle)
		api.DELETE("/objectives/:objective_id", cfg.ObjectiveHandler.Delete)
	}

	// Recall
	if cfg.RecallHandler != nil {
		api.GET("/recall", cfg.RecallHandler.Deck)
		api.GET("/documents/:id/recall", cfg.RecallHandler.Question)
	}

	return r
}
