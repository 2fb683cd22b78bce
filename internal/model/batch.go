package model

import (
	"time"

	"gorm.io/datatypes"
)

// ImportBatch 每次提交导入的审计记录
type ImportBatch struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	BatchUUID string         `gorm:"column:batch_uuid;type:varchar(64);uniqueIndex;not null;comment:批次全局唯一ID" json:"batch_uuid"`
	Variant   Variant        `gorm:"column:variant;type:varchar(16);index;not null;comment:halfs/cyber" json:"variant"`
	Source    string         `gorm:"column:source;type:varchar(16);not null;comment:paste/xlsx/cli" json:"source"`
	Lines     int            `gorm:"column:lines;type:int;not null;default:0;comment:非空行数" json:"lines"`
	Imported  int            `gorm:"column:imported;type:int;not null;default:0;comment:入库条数" json:"imported"`
	Skipped   int            `gorm:"column:skipped;type:int;not null;default:0;comment:拒绝条数" json:"skipped"`
	Errors    datatypes.JSON `gorm:"column:errors;comment:拒绝原因（截断）" json:"errors"`
	Warnings  datatypes.JSON `gorm:"column:warnings;comment:日期歧义等提示" json:"warnings"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;comment:创建时间" json:"created_at"`
}

func (ImportBatch) TableName() string { return "import_batches" }
