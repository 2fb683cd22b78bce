package service

import (
	"context"
	"io"
	"strings"

	"ScoreIngest/internal/config"
	"ScoreIngest/internal/ingest"
	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"

	"github.com/sirupsen/logrus"
)

// MatchService 记录查询、删除与导出
type MatchService struct {
	catalog
	cfg    config.ImportConfig
	logger *logrus.Logger
}

// NewMatchService 创建 MatchService
func NewMatchService(stores map[model.Variant]interfaces.MatchStore, cfg config.ImportConfig, logger *logrus.Logger) *MatchService {
	return &MatchService{
		catalog: newCatalog(stores, cfg.PairBoxRows),
		cfg:     cfg,
		logger:  logger,
	}
}

// List 按赛事过滤，limit<=0 时使用默认条数
func (s *MatchService) List(ctx context.Context, variant model.Variant, tournament string, limit int) ([]model.MatchRecord, error) {
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || (s.cfg.DefaultListLimit > 0 && limit > s.cfg.DefaultListLimit) {
		limit = s.cfg.DefaultListLimit
	}
	return store.List(ctx, interfaces.MatchFilter{Tournament: strings.TrimSpace(tournament), Limit: limit})
}

// Get 单条记录
func (s *MatchService) Get(ctx context.Context, variant model.Variant, id uint64) (model.MatchRecord, error) {
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, id)
}

// DeleteByIDs 返回删除条数，不存在的 id 忽略
func (s *MatchService) DeleteByIDs(ctx context.Context, variant model.Variant, ids []uint64) (int64, error) {
	store, err := s.store(variant)
	if err != nil {
		return 0, err
	}
	deleted, err := store.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(logrus.Fields{"variant": variant, "requested": len(ids), "deleted": deleted}).Info("记录已删除")
	return deleted, nil
}

// DeleteTournament 删除某赛事的全部记录
func (s *MatchService) DeleteTournament(ctx context.Context, variant model.Variant, tournament string) (int64, error) {
	store, err := s.store(variant)
	if err != nil {
		return 0, err
	}
	tournament = strings.TrimSpace(tournament)
	if tournament == "" {
		return 0, invalidf("tournament must not be empty")
	}
	deleted, err := store.DeleteByTournament(ctx, tournament)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(logrus.Fields{"variant": variant, "tournament": tournament, "deleted": deleted}).Info("赛事已删除")
	return deleted, nil
}

// DeleteAll 清空该变体的全部记录
func (s *MatchService) DeleteAll(ctx context.Context, variant model.Variant) (int64, error) {
	store, err := s.store(variant)
	if err != nil {
		return 0, err
	}
	deleted, err := store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(logrus.Fields{"variant": variant, "deleted": deleted}).Warn("记录已清空")
	return deleted, nil
}

// Tournaments 去重赛事名
func (s *MatchService) Tournaments(ctx context.Context, variant model.Variant) ([]string, error) {
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	names, err := store.DistinctTournaments(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Statistics 记录数、赛事数、球队数
func (s *MatchService) Statistics(ctx context.Context, variant model.Variant) (*interfaces.MatchStats, error) {
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	return store.Stats(ctx)
}

// Export 导出为 xlsx，tournament 为空时导出全部
func (s *MatchService) Export(ctx context.Context, variant model.Variant, tournament string, w io.Writer) error {
	schema, store, err := s.resolve(variant)
	if err != nil {
		return err
	}
	records, err := store.List(ctx, interfaces.MatchFilter{Tournament: strings.TrimSpace(tournament)})
	if err != nil {
		return err
	}
	return ingest.WriteWorkbook(w, schema, records)
}
