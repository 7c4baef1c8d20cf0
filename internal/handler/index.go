package handler

import (
	"net/http"

	"aptchat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// IndexHandler handles vector index maintenance requests
type IndexHandler struct {
	indexer *service.Indexer
	log     *logrus.Logger
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(indexer *service.Indexer, log *logrus.Logger) *IndexHandler {
	return &IndexHandler{
		indexer: indexer,
		log:     log,
	}
}

// Rebuild handles POST /api/v1/index/rebuild
func (h *IndexHandler) Rebuild(c *gin.Context) {
	indexed, err := h.indexer.BuildIndex(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("index rebuild failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rebuild failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"indexed": indexed})
}
