package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "runs.db")
	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSQLiteStore_Contract(t *testing.T) {
	store, _ := open(t)
	ports.RunStoreContract(t, store)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	store, _ := open(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "r", Machine: "a", StartedAt: now}))
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "r", Machine: "b", StartedAt: now}))

	rec, err := store.Load(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "b", rec.Machine)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, ids)
}

func TestSQLiteStore_Persists(t *testing.T) {
	store, path := open(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "keep", Verdict: domain.VerdictRejected, StartedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	rec, err := reopened.Load(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, rec.Verdict)
}

func TestSQLiteStore_Order(t *testing.T) {
	store, _ := open(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "late", StartedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "early", StartedAt: base}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, ids)
}
