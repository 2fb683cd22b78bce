package repository

import (
	"context"
	"testing"

	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBatchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBatchRepository(newTestDB(t))

	first := &model.ImportBatch{Variant: model.VariantHalfs, Source: "paste", Lines: 3, Imported: 2, Skipped: 1,
		Errors: datatypes.JSON(`["line 2: too few columns"]`), Warnings: datatypes.JSON(`[]`)}
	require.NoError(t, repo.Save(ctx, first))
	require.NotEmpty(t, first.BatchUUID)

	second := &model.ImportBatch{Variant: model.VariantCyber, Source: "xlsx", Errors: datatypes.JSON(`[]`), Warnings: datatypes.JSON(`[]`)}
	require.NoError(t, repo.Save(ctx, second))
	assert.NotEqual(t, first.BatchUUID, second.BatchUUID)

	got, err := repo.GetByUUID(ctx, first.BatchUUID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Imported)
	assert.JSONEq(t, `["line 2: too few columns"]`, string(got.Errors))

	_, err = repo.GetByUUID(ctx, "missing")
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)

	halfs, err := repo.ListRecent(ctx, model.VariantHalfs, 0)
	require.NoError(t, err)
	require.Len(t, halfs, 1)
	assert.Equal(t, first.BatchUUID, halfs[0].BatchUUID)

	all, err := repo.ListRecent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.BatchUUID, all[0].BatchUUID)
}
