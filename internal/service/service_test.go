package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"ScoreIngest/internal/config"
	"ScoreIngest/internal/database"
	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"
	"ScoreIngest/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	imports     *ImportService
	corrections *CorrectionService
	matches     *MatchService
	stores      map[model.Variant]interfaces.MatchStore
}

var testImportConfig = config.ImportConfig{
	MaxReportedErrors: 2,
	DefaultListLimit:  100,
	PairBoxRows:       true,
	MaxUploadBytes:    1 << 20,
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	stores := repository.NewMatchStores(db)
	return &testEnv{
		imports:     NewImportService(stores, repository.NewBatchRepository(db), testImportConfig, nil, logger),
		corrections: NewCorrectionService(stores, nil, logger),
		matches:     NewMatchService(stores, testImportConfig, logger),
		stores:      stores,
	}
}

// commit 写入粘贴文本并断言全部通过
func (e *testEnv) commit(t *testing.T, variant model.Variant, lines ...string) {
	t.Helper()
	res, err := e.imports.Commit(context.Background(), variant, strings.Join(lines, "\n"), SourcePaste)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, len(lines), res.Imported)
}

func halfRow(date, tournament, home, away string) string {
	return strings.Join([]string{date, tournament, home, away, "20", "18", "22", "19"}, "\t")
}

func boxRow(tournament, team, side, opponent string) string {
	return strings.Join([]string{
		"21.02.2026", tournament, team, side,
		"20", "41", "8", "25", "12", "15", "9", "11",
		"71,5", "76", opponent, "1,07",
	}, "\t")
}
