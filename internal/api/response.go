package api

import (
	"errors"
	"net/http"

	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"
	"ScoreIngest/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError 按错误类型映射状态码：参数错误 400，记录不存在 404，其余 500
func respondError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, interfaces.ErrRecordNotFound):
		status = http.StatusNotFound
	}
	entry := logger.WithError(err).WithField("path", c.FullPath())
	if status == http.StatusInternalServerError {
		entry.Error(op + " failed")
	} else {
		entry.Warn(op + " rejected")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// variantParam 解析路由中的 :variant，未知变体直接返回 400
func variantParam(c *gin.Context) (model.Variant, bool) {
	v, ok := model.ParseVariant(c.Param("variant"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variant: " + c.Param("variant")})
		return "", false
	}
	return v, true
}
