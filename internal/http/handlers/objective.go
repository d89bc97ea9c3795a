package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/http/response"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/services"
)

type ObjectiveHandler struct {
	log        *logger.Logger
	objectives services.ObjectiveService
}

func NewObjectiveHandler(log *logger.Logger, objectives services.ObjectiveService) *ObjectiveHandler {
	return &ObjectiveHandler{
		log:        log.With("handler", "ObjectiveHandler"),
		objectives: objectives,
	}
}

// scope reads the optional :id document param. Routes without it serve standalone
// objectives and yield a nil scope.
func (h *ObjectiveHandler) scope(c *gin.Context) (*uuid.UUID, bool) {
	if c.Param("id") == "" {
		return nil, true
	}
	docID, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	return &docID, true
}

func (h *ObjectiveHandler) Tree(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		tree []*forest.ObjectiveNode
		err  error
	)
	if scope == nil {
		tree, err = h.objectives.StandaloneTree(ctx)
	} else {
		tree, err = h.objectives.Tree(ctx, *scope)
	}
	if err != nil {
		respondDomainError(c, h.log, "Objective tree failed", err)
		return
	}
	response.RespondOK(c, gin.H{"objectives": tree})
}

func (h *ObjectiveHandler) Add(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var in services.AddObjectiveInput
	if !bindJSON(c, &in) {
		return
	}
	ctx := c.Request.Context()
	var (
		obj *types.LearningObjective
		err error
	)
	if scope == nil {
		obj, err = h.objectives.AddStandalone(ctx, in)
	} else {
		obj, err = h.objectives.Add(ctx, *scope, in)
	}
	if err != nil {
		respondDomainError(c, h.log, "Add objective failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"objective": obj})
}

func (h *ObjectiveHandler) Toggle(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	objID, ok := uuidParam(c, "objective_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		obj *types.LearningObjective
		err error
	)
	if scope == nil {
		obj, err = h.objectives.ToggleStandalone(ctx, objID)
	} else {
		obj, err = h.objectives.Toggle(ctx, *scope, objID)
	}
	if err != nil {
		respondDomainError(c, h.log, "Toggle objective failed", err)
		return
	}
	response.RespondOK(c, gin.H{"objective": obj})
}

func (h *ObjectiveHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	objID, ok := uuidParam(c, "objective_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var (
		n   int
		err error
	)
	if scope == nil {
		n, err = h.objectives.DeleteStandalone(ctx, objID)
	} else {
		n, err = h.objectives.Delete(ctx, *scope, objID)
	}
	if err != nil {
		respondDomainError(c, h.log, "Delete objective failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": n})
}
