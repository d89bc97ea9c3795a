package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Roblokonha/StudyVault/internal/http/response"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/services"
)

type WorkspaceHandler struct {
	log       *logger.Logger
	workspace services.WorkspaceService
}

func NewWorkspaceHandler(log *logger.Logger, workspace services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		log:       log.With("handler", "WorkspaceHandler"),
		workspace: workspace,
	}
}

// docAndItem reads the :id and :item_id path parameters.
func docAndItem(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	itemID, ok := uuidParam(c, "item_id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return docID, itemID, true
}

func (h *WorkspaceHandler) Tree(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	tree, err := h.workspace.Tree(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "Workspace tree failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": tree})
}

func (h *WorkspaceHandler) CreateItem(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.CreateItemInput
	if !bindJSON(c, &in) {
		return
	}
	it, err := h.workspace.CreateItem(c.Request.Context(), docID, in)
	if err != nil {
		respondDomainError(c, h.log, "Create item failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"item": it})
}

func (h *WorkspaceHandler) GetItem(c *gin.Context) {
	docID, itemID, ok := docAndItem(c)
	if !ok {
		return
	}
	it, err := h.workspace.GetItem(c.Request.Context(), docID, itemID)
	if err != nil {
		respondDomainError(c, h.log, "Get item failed", err)
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

func (h *WorkspaceHandler) UpdateItem(c *gin.Context) {
	docID, itemID, ok := docAndItem(c)
	if !ok {
		return
	}
	var in services.UpdateItemInput
	if !bindJSON(c, &in) {
		return
	}
	it, err := h.workspace.UpdateItem(c.Request.Context(), docID, itemID, in)
	if err != nil {
		respondDomainError(c, h.log, "Update item failed", err)
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

func (h *WorkspaceHandler) UpdateUserContent(c *gin.Context) {
	docID, itemID, ok := docAndItem(c)
	if !ok {
		return
	}
	var in struct {
		UserContent string `json:"user_content"`
	}
	if !bindJSON(c, &in) {
		return
	}
	it, err := h.workspace.UpdateUserContent(c.Request.Context(), docID, itemID, in.UserContent)
	if err != nil {
		respondDomainError(c, h.log, "Update user content failed", err)
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

func (h *WorkspaceHandler) UpdateLabels(c *gin.Context) {
	docID, itemID, ok := docAndItem(c)
	if !ok {
		return
	}
	var in services.LabelsInput
	if !bindJSON(c, &in) {
		return
	}
	it, err := h.workspace.UpdateLabels(c.Request.Context(), docID, itemID, in)
	if err != nil {
		respondDomainError(c, h.log, "Update labels failed", err)
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

func (h *WorkspaceHandler) MoveItem(c *gin.Context) {
	docID, itemID, ok := docAndItem(c)
	if !ok {
		return
	}
	var in struct {
		ParentID *uuid.UUID `json:"parent_id"`
	}
	if !bindJSON(c, &in) {
		return
	}
	it, err := h.workspace.MoveItem(c.Request.Context(), docID, itemID, in.ParentID)
	if err != nil {
		respondDomainError(c, h.log, "Move item failed", err)
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

func (h *WorkspaceHandler) DeleteItem(c *gin.Context) {
	docID, itemID, ok := docAndItem(c)
	if !ok {
		return
	}
	n, err := h.workspace.DeleteItem(c.Request.Context(), docID, itemID)
	if err != nil {
		respondDomainError(c, h.log, "Delete item failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": n})
}

func (h *WorkspaceHandler) AutoBreakdown(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	tree, err := h.workspace.AutoBreakdown(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "Auto breakdown failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": tree})
}

func (h *WorkspaceHandler) CreateRelation(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in services.CreateRelationInput
	if !bindJSON(c, &in) {
		return
	}
	rel, err := h.workspace.CreateRelation(c.Request.Context(), docID, in)
	if err != nil {
		respondDomainError(c, h.log, "Create relation failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"relation": rel})
}

func (h *WorkspaceHandler) ListRelations(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	rels, err := h.workspace.ListRelations(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "List relations failed", err)
		return
	}
	response.RespondOK(c, gin.H{"relations": rels})
}

func (h *WorkspaceHandler) DeleteRelation(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	relID, ok := uuidParam(c, "relation_id")
	if !ok {
		return
	}
	if err := h.workspace.DeleteRelation(c.Request.Context(), docID, relID); err != nil {
		respondDomainError(c, h.log, "Delete relation failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) MergeCandidates(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cand, err := h.workspace.MergeCandidates(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "Merge candidates failed", err)
		return
	}
	response.RespondOK(c, cand)
}

func (h *WorkspaceHandler) Merge(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in struct {
		SourceID *uuid.UUID `json:"source_id"`
		TargetID *uuid.UUID `json:"target_id"`
	}
	// an empty body selects the newest pair
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.workspace.Merge(c.Request.Context(), docID, in.SourceID, in.TargetID)
	if err != nil {
		respondDomainError(c, h.log, "Merge failed", err)
		return
	}
	response.RespondOK(c, out)
}
