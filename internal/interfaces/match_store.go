package interfaces

import (
	"context"
	"errors"

	"ScoreIngest/internal/model"
)

// ErrRecordNotFound 指定 id 的记录不存在
var ErrRecordNotFound = errors.New("record not found")

// MatchFilter 列表筛选条件
type MatchFilter struct {
	Tournament string // 为空表示全部
	Limit      int    // <=0 表示不限制
}

// MatchStats 记录、赛事、球队数量
type MatchStats struct {
	Records     int64 `json:"total_records"`
	Tournaments int64 `json:"tournaments_count"`
	Teams       int64 `json:"teams_count"`
}

// RewriteFunc 批量修正的逐条回调：返回需要更新的列（nil/空表示不改动）
type RewriteFunc func(rec model.MatchRecord) (map[string]interface{}, error)

// MatchStore 单个变体的持久化接口
type MatchStore interface {
	Variant() model.Variant
	// List 按 id 倒序
	List(ctx context.Context, filter MatchFilter) ([]model.MatchRecord, error)
	Get(ctx context.Context, id uint64) (model.MatchRecord, error)
	// InsertBatch 单事务写入，成功后记录的 id 已回填
	InsertBatch(ctx context.Context, records []model.MatchRecord) error
	// UpdateField 更新单列并返回最新记录；id 不存在时返回 ErrRecordNotFound
	UpdateField(ctx context.Context, id uint64, column string, value interface{}) (model.MatchRecord, error)
	DeleteByIDs(ctx context.Context, ids []uint64) (int64, error)
	DeleteByTournament(ctx context.Context, tournament string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	// DistinctTournaments 去重、非空、升序
	DistinctTournaments(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*MatchStats, error)
	// Rewrite 在一个事务内先扫描再逐条写回，返回实际更新的记录数
	Rewrite(ctx context.Context, filter MatchFilter, fn RewriteFunc) (int, error)
	// MergeTournaments 将 sources 中的赛事名统一改为 target，返回更新行数
	MergeTournaments(ctx context.Context, sources []string, target string) (int64, error)
}
