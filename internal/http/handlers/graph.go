package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Roblokonha/StudyVault/internal/http/response"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/services"
)

type GraphHandler struct {
	log    *logger.Logger
	graphs services.GraphService
}

func NewGraphHandler(log *logger.Logger, graphs services.GraphService) *GraphHandler {
	return &GraphHandler{
		log:    log.With("handler", "GraphHandler"),
		graphs: graphs,
	}
}

func (h *GraphHandler) Graph(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	g, err := h.graphs.Graph(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "Compose graph failed", err)
		return
	}
	response.RespondOK(c, g)
}

// Network serves the Mermaid export as plain text.
func (h *GraphHandler) Network(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	text, err := h.graphs.Mermaid(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "Mermaid export failed", err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *GraphHandler) NetworkPNG(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	b, err := h.graphs.PNG(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "PNG export failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *GraphHandler) Sync(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	res, err := h.graphs.Sync(c.Request.Context(), docID)
	if err != nil {
		respondDomainError(c, h.log, "Graph sync failed", err)
		return
	}
	response.RespondOK(c, res)
}
