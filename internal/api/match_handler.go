package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"ScoreIngest/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MatchHandler 记录查询、删除、导出接口
type MatchHandler struct {
	matchService *service.MatchService
	logger       *logrus.Logger
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(svc *service.MatchService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{matchService: svc, logger: logger}
}

// ListMatches GET /api/:variant/matches?tournament=&limit=
func (h *MatchHandler) ListMatches(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	records, err := h.matchService.List(c.Request.Context(), variant, c.Query("tournament"), limit)
	if err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records, "total": len(records)})
}

// GetMatch GET /api/:variant/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	rec, err := h.matchService.Get(c.Request.Context(), variant, id)
	if err != nil {
		respondError(c, h.logger, "GetMatch", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type deleteRequest struct {
	IDs []uint64 `json:"ids"`
}

// DeleteMatches DELETE /api/:variant/matches  body: {"ids": [1, 2]}
func (h *MatchHandler) DeleteMatches(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deleted, err := h.matchService.DeleteByIDs(c.Request.Context(), variant, req.IDs)
	if err != nil {
		respondError(c, h.logger, "DeleteMatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ClearMatches DELETE /api/:variant/matches/all
func (h *MatchHandler) ClearMatches(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	deleted, err := h.matchService.DeleteAll(c.Request.Context(), variant)
	if err != nil {
		respondError(c, h.logger, "ClearMatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// DeleteTournament DELETE /api/:variant/tournaments/:tournament
func (h *MatchHandler) DeleteTournament(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	deleted, err := h.matchService.DeleteTournament(c.Request.Context(), variant, c.Param("tournament"))
	if err != nil {
		respondError(c, h.logger, "DeleteTournament", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ListTournaments GET /api/:variant/tournaments
func (h *MatchHandler) ListTournaments(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	names, err := h.matchService.Tournaments(c.Request.Context(), variant)
	if err != nil {
		respondError(c, h.logger, "ListTournaments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": names})
}

// Statistics GET /api/:variant/statistics
func (h *MatchHandler) Statistics(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	stats, err := h.matchService.Statistics(c.Request.Context(), variant)
	if err != nil {
		respondError(c, h.logger, "Statistics", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export GET /api/:variant/export?tournament=
func (h *MatchHandler) Export(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.matchService.Export(c.Request.Context(), variant, c.Query("tournament"), &buf); err != nil {
		respondError(c, h.logger, "Export", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, variant))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
