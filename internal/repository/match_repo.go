package repository

import (
	"context"
	"errors"
	"fmt"

	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"

	"gorm.io/gorm"
)

// teamColumns 各变体参与球队统计的列
var teamColumns = map[model.Variant][]string{
	model.VariantHalfs: {"team_home", "team_away"},
	model.VariantCyber: {"team"},
}

type matchRepository struct {
	db      *gorm.DB
	variant model.Variant
}

// NewMatchRepository 创建指定变体的 MatchStore
func NewMatchRepository(db *gorm.DB, variant model.Variant) interfaces.MatchStore {
	return &matchRepository{db: db, variant: variant}
}

// NewMatchStores 为全部变体创建 MatchStore
func NewMatchStores(db *gorm.DB) map[model.Variant]interfaces.MatchStore {
	stores := make(map[model.Variant]interfaces.MatchStore)
	for _, v := range model.Variants() {
		stores[v] = NewMatchRepository(db, v)
	}
	return stores
}

func (r *matchRepository) Variant() model.Variant { return r.variant }

func (r *matchRepository) proto() model.MatchRecord { return model.NewRecord(r.variant) }

// find 按变体反序列化为具体类型
func (r *matchRepository) find(q *gorm.DB) ([]model.MatchRecord, error) {
	switch r.variant {
	case model.VariantHalfs:
		return findAs[model.HalfMatch](q)
	case model.VariantCyber:
		return findAs[model.BoxMatch](q)
	}
	return nil, fmt.Errorf("未知变体: %s", r.variant)
}

func findAs[T any](q *gorm.DB) ([]model.MatchRecord, error) {
	var rows []*T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.MatchRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, any(row).(model.MatchRecord))
	}
	return out, nil
}

func applyFilter(q *gorm.DB, filter interfaces.MatchFilter) *gorm.DB {
	if filter.Tournament != "" {
		q = q.Where("tournament = ?", filter.Tournament)
	}
	return q
}

// List 按条件查询，id 倒序
func (r *matchRepository) List(ctx context.Context, filter interfaces.MatchFilter) ([]model.MatchRecord, error) {
	q := applyFilter(r.db.WithContext(ctx).Model(r.proto()), filter).Order("id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	records, err := r.find(q)
	if err != nil {
		return nil, fmt.Errorf("查询%s记录失败: %w", r.variant, err)
	}
	return records, nil
}

// Get 按 id 查询单条
func (r *matchRepository) Get(ctx context.Context, id uint64) (model.MatchRecord, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *matchRepository) get(db *gorm.DB, id uint64) (model.MatchRecord, error) {
	rec := r.proto()
	if err := db.First(rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s id %d: %w", r.variant, id, interfaces.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("查询%s记录失败: %w", r.variant, err)
	}
	return rec, nil
}

// InsertBatch 单事务逐条写入，任一失败整体回滚
func (r *matchRepository) InsertBatch(ctx context.Context, records []model.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}
	// 开启事务
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	for i, rec := range records {
		if rec.Variant() != r.variant {
			tx.Rollback()
			return fmt.Errorf("第%d条记录变体为%s，期望%s", i+1, rec.Variant(), r.variant)
		}
		if err := tx.Create(rec).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("保存%s记录失败: %w, tournament: %s", r.variant, err, rec.GroupKey())
		}
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

// UpdateField 更新单列后重新读取
func (r *matchRepository) UpdateField(ctx context.Context, id uint64, column string, value interface{}) (model.MatchRecord, error) {
	var updated model.MatchRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.get(tx, id); err != nil {
			return err
		}
		if err := tx.Model(r.proto()).Where("id = ?", id).Update(column, value).Error; err != nil {
			return fmt.Errorf("更新%s.%s失败: %w", r.variant, column, err)
		}
		rec, err := r.get(tx, id)
		if err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteByIDs 按 id 删除，返回删除条数
func (r *matchRepository) DeleteByIDs(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(r.proto())
	if res.Error != nil {
		return 0, fmt.Errorf("删除%s记录失败: %w", r.variant, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByTournament 删除某赛事的全部记录
func (r *matchRepository) DeleteByTournament(ctx context.Context, tournament string) (int64, error) {
	res := r.db.WithContext(ctx).Where("tournament = ?", tournament).Delete(r.proto())
	if res.Error != nil {
		return 0, fmt.Errorf("删除赛事%s失败: %w", tournament, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteAll 清空表。自增 id 不回收
func (r *matchRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(r.proto())
	if res.Error != nil {
		return 0, fmt.Errorf("清空%s失败: %w", r.variant, res.Error)
	}
	return res.RowsAffected, nil
}

// DistinctTournaments 去重赛事名
func (r *matchRepository) DistinctTournaments(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(r.proto()).
		Where("tournament <> ''").
		Distinct("tournament").
		Order("tournament").
		Pluck("tournament", &names).Error
	if err != nil {
		return nil, fmt.Errorf("查询赛事列表失败: %w", err)
	}
	return names, nil
}

// Stats 记录数 / 赛事数 / 球队数
func (r *matchRepository) Stats(ctx context.Context) (*interfaces.MatchStats, error) {
	db := r.db.WithContext(ctx)
	stats := &interfaces.MatchStats{}
	if err := db.Model(r.proto()).Count(&stats.Records).Error; err != nil {
		return nil, fmt.Errorf("统计记录数失败: %w", err)
	}
	if err := db.Model(r.proto()).Distinct("tournament").Count(&stats.Tournaments).Error; err != nil {
		return nil, fmt.Errorf("统计赛事数失败: %w", err)
	}

	table := r.proto().(interface{ TableName() string }).TableName()
	cols := teamColumns[r.variant]
	union := ""
	for i, c := range cols {
		if i > 0 {
			union += " UNION "
		}
		union += fmt.Sprintf("SELECT %s AS team FROM %s", c, table)
	}
	if err := db.Raw("SELECT COUNT(*) FROM (" + union + ") AS teams").Scan(&stats.Teams).Error; err != nil {
		return nil, fmt.Errorf("统计球队数失败: %w", err)
	}
	return stats, nil
}

// Rewrite 事务内扫描 filter 命中的记录，按回调结果逐条更新
func (r *matchRepository) Rewrite(ctx context.Context, filter interfaces.MatchFilter, fn interfaces.RewriteFunc) (int, error) {
	changed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := r.find(applyFilter(tx.Model(r.proto()), filter).Order("id"))
		if err != nil {
			return fmt.Errorf("扫描%s记录失败: %w", r.variant, err)
		}
		for _, rec := range records {
			updates, err := fn(rec)
			if err != nil {
				return err
			}
			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(r.proto()).Where("id = ?", rec.RecordID()).Updates(updates).Error; err != nil {
				return fmt.Errorf("更新%s id %d 失败: %w", r.variant, rec.RecordID(), err)
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// MergeTournaments 单条 UPDATE 完成合并，记录总数不变
func (r *matchRepository) MergeTournaments(ctx context.Context, sources []string, target string) (int64, error) {
	if len(sources) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(r.proto()).
		Where("tournament IN ?", sources).
		Update("tournament", target)
	if res.Error != nil {
		return 0, fmt.Errorf("合并赛事失败: %w", res.Error)
	}
	return res.RowsAffected, nil
}
