package api

import (
	"net/http"
	"strconv"

	"ScoreIngest/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CorrectionHandler 批量修正与单字段编辑接口
type CorrectionHandler struct {
	correctionService *service.CorrectionService
	logger            *logrus.Logger
}

// NewCorrectionHandler 创建 CorrectionHandler
func NewCorrectionHandler(svc *service.CorrectionService, logger *logrus.Logger) *CorrectionHandler {
	return &CorrectionHandler{correctionService: svc, logger: logger}
}

// NormalizeDates POST /api/:variant/matches/normalize-dates
func (h *CorrectionHandler) NormalizeDates(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	result, err := h.correctionService.NormalizeDates(c.Request.Context(), variant)
	if err != nil {
		respondError(c, h.logger, "NormalizeDates", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Replace POST /api/:variant/matches/replace
func (h *CorrectionHandler) Replace(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	var req service.ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.correctionService.Replace(c.Request.Context(), variant, req)
	if err != nil {
		respondError(c, h.logger, "Replace", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MergeTournaments POST /api/:variant/tournaments/merge
func (h *CorrectionHandler) MergeTournaments(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	var req service.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.correctionService.MergeTournaments(c.Request.Context(), variant, req)
	if err != nil {
		respondError(c, h.logger, "MergeTournaments", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateField PATCH /api/:variant/matches/:id  body: {"field": "date", "value": "21.02.2026"}
func (h *CorrectionHandler) UpdateField(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req service.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.correctionService.UpdateField(c.Request.Context(), variant, id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateField", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
