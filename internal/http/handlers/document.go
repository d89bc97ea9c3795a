package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Roblokonha/StudyVault/internal/http/response"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/services"
)

const maxUploadBytes = 32 << 20

type DocumentHandler struct {
	log       *logger.Logger
	documents services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, documents services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:       log.With("handler", "DocumentHandler"),
		documents: documents,
	}
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var in services.CreateDocumentInput
	if !bindJSON(c, &in) {
		return
	}
	doc, err := h.documents.Create(c.Request.Context(), in)
	if err != nil {
		respondDomainError(c, h.log, "Create document failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"document": doc})
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	doc, err := h.documents.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), strings.TrimSpace(c.PostForm("category")), data)
	if err != nil {
		respondDomainError(c, h.log, "Upload document failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"document": doc})
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.log, "List documents failed", err)
		return
	}
	response.RespondOK(c, gin.H{"documents": docs})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.log, "Get document failed", err)
		return
	}
	response.RespondOK(c, gin.H{"document": doc})
}

func (h *DocumentHandler) UpdateSummary(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in struct {
		UserSummary string `json:"user_summary"`
	}
	if !bindJSON(c, &in) {
		return
	}
	doc, err := h.documents.UpdateSummary(c.Request.Context(), id, in.UserSummary)
	if err != nil {
		respondDomainError(c, h.log, "Update summary failed", err)
		return
	}
	response.RespondOK(c, gin.H{"document": doc})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.documents.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, h.log, "Delete document failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
