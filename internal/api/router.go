package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers 全部业务接口
type Handlers struct {
	Import     *ImportHandler
	Correction *CorrectionHandler
	Match      *MatchHandler
}

// RegisterRoutes 注册 /health 与 /api/:variant 下的全部路由
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/api/:variant")

	// 记录查询与删除
	g.GET("/matches", h.Match.ListMatches)
	g.GET("/matches/:id", h.Match.GetMatch)
	g.DELETE("/matches", h.Match.DeleteMatches)
	g.DELETE("/matches/all", h.Match.ClearMatches)
	g.GET("/tournaments", h.Match.ListTournaments)
	g.DELETE("/tournaments/:tournament", h.Match.DeleteTournament)
	g.GET("/statistics", h.Match.Statistics)
	g.GET("/export", h.Match.Export)

	// 导入
	g.POST("/matches/import/preview", h.Import.Preview)
	g.POST("/matches/import", h.Import.Commit)
	g.POST("/matches/import/xlsx", h.Import.UploadWorkbook)
	g.GET("/imports", h.Import.ListBatches)
	g.GET("/imports/:batch_id", h.Import.GetBatch)

	// 批量修正
	g.PATCH("/matches/:id", h.Correction.UpdateField)
	g.POST("/matches/normalize-dates", h.Correction.NormalizeDates)
	g.POST("/matches/replace", h.Correction.Replace)
	g.POST("/tournaments/merge", h.Correction.MergeTournaments)
}
