package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Roblokonha/StudyVault/internal/http/response"
	"github.com/Roblokonha/StudyVault/internal/learning/recall"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/services"
)

type RecallHandler struct {
	log    *logger.Logger
	recall services.RecallService
}

func NewRecallHandler(log *logger.Logger, recallService services.RecallService) *RecallHandler {
	return &RecallHandler{
		log:    log.With("handler", "RecallHandler"),
		recall: recallService,
	}
}

func (h *RecallHandler) Deck(c *gin.Context) {
	deck, err := h.recall.Deck(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.log, "Recall deck failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": deck})
}

// Question answers {"question": null} when no sentence can carry the blanks.
func (h *RecallHandler) Question(c *gin.Context) {
	docID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	def := recall.DefaultOptions()
	opts := recall.Options{
		BlankCount:    intQuery(c, "blanks", def.BlankCount),
		MinWordLength: intQuery(c, "min_len", def.MinWordLength),
	}
	q, err := h.recall.Question(c.Request.Context(), docID, opts)
	if err != nil {
		respondDomainError(c, h.log, "Recall question failed", err)
		return
	}
	response.RespondOK(c, gin.H{"question": q})
}
