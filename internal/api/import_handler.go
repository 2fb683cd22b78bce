package api

import (
	"net/http"
	"strconv"

	"ScoreIngest/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ImportHandler 粘贴导入与 xlsx 上传接口
type ImportHandler struct {
	importService *service.ImportService
	logger        *logrus.Logger
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(svc *service.ImportService, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{importService: svc, logger: logger}
}

// Preview 预览 POST /api/:variant/matches/import/preview
func (h *ImportHandler) Preview(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	var req service.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.importService.Preview(c.Request.Context(), variant, req.RawText)
	if err != nil {
		respondError(c, h.logger, "Preview", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Commit 提交 POST /api/:variant/matches/import
func (h *ImportHandler) Commit(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	var req service.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.importService.Commit(c.Request.Context(), variant, req.RawText, service.SourcePaste)
	if err != nil {
		respondError(c, h.logger, "Commit", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadWorkbook xlsx 上传 POST /api/:variant/matches/import/xlsx?sheet=&dry_run=true
// 表单字段 file；dry_run=true 时只预览
func (h *ImportHandler) UploadWorkbook(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	text, err := h.importService.ReadWorkbook(f, c.Query("sheet"))
	if err != nil {
		respondError(c, h.logger, "UploadWorkbook", err)
		return
	}
	dryRun, _ := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	if dryRun {
		result, err := h.importService.Preview(c.Request.Context(), variant, text)
		if err != nil {
			respondError(c, h.logger, "UploadWorkbook", err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}
	result, err := h.importService.Commit(c.Request.Context(), variant, text, service.SourceXLSX)
	if err != nil {
		respondError(c, h.logger, "UploadWorkbook", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListBatches 导入批次 GET /api/:variant/imports?limit=20
func (h *ImportHandler) ListBatches(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	batches, err := h.importService.ListBatches(c.Request.Context(), variant, limit)
	if err != nil {
		respondError(c, h.logger, "ListBatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": batches})
}

// GetBatch 批次详情 GET /api/:variant/imports/:batch_id
func (h *ImportHandler) GetBatch(c *gin.Context) {
	variant, ok := variantParam(c)
	if !ok {
		return
	}
	batch, err := h.importService.GetBatch(c.Request.Context(), variant, c.Param("batch_id"))
	if err != nil {
		respondError(c, h.logger, "GetBatch", err)
		return
	}
	c.JSON(http.StatusOK, batch)
}
