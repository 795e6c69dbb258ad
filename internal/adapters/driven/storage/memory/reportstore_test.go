package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

func TestReportStore_SaveAndGet(t *testing.T) {
	store := NewReportStore("")
	ctx := context.Background()
	assert.Equal(t, "memory", store.Name())

	saved, err := store.Save(ctx, &domain.ReportRecord{ID: "r1", ShortID: "abc", Data: []byte(`{}`)})
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ShortID)

	got, err = store.GetByShortID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)

	_, err = store.Get(ctx, "r2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetByShortID(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_UpsertKeepsCreatedAt(t *testing.T) {
	store := NewReportStore("remote")
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := store.Save(ctx, &domain.ReportRecord{ID: "r1", Data: []byte(`1`), CreatedAt: created})
	require.NoError(t, err)
	_, err = store.Save(ctx, &domain.ReportRecord{ID: "r1", Data: []byte(`2`), CreatedAt: time.Now()})
	require.NoError(t, err)

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), got.Data)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, 2, store.SaveCount())
}

func TestReportStore_InjectedErrors(t *testing.T) {
	store := NewReportStore("remote")
	store.SaveErr = errors.New("boom")
	store.GetErr = domain.ErrPermissionDenied
	ctx := context.Background()

	_, err := store.Save(ctx, &domain.ReportRecord{ID: "r1"})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, store.SaveCount())

	_, err = store.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestReportStore_ListFiltersAndSorts(t *testing.T) {
	store := NewReportStore("")
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	_, _ = store.Save(ctx, &domain.ReportRecord{ID: "old", UserID: "u1", CreatedAt: base})
	_, _ = store.Save(ctx, &domain.ReportRecord{ID: "new", UserID: "u1", CreatedAt: base.Add(time.Hour)})
	_, _ = store.Save(ctx, &domain.ReportRecord{ID: "other", UserID: "u2", CreatedAt: base.Add(2 * time.Hour)})

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "other", all[0].ID)

	mine, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "new", mine[0].ID)
}

func TestReportStore_Delete(t *testing.T) {
	store := NewReportStore("local")
	ctx := context.Background()
	_, err := store.Save(ctx, &domain.ReportRecord{ID: "r1", ShortID: "abc", Data: []byte(`{}`)})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "r1"))
	require.NoError(t, store.Delete(ctx, "r1"))

	_, err = store.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
