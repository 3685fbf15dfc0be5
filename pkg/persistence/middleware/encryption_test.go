package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sampleRecord() *domain.RunRecord {
	return &domain.RunRecord{
		ID:         "run-1",
		Machine:    "contains-one",
		Input:      "0001",
		Verdict:    domain.VerdictAccepted,
		Halt:       domain.HaltAcceptState,
		Steps:      4,
		FinalState: "qA",
		Tape:       "0001 ",
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	store := mw(backend)

	rec := sampleRecord()
	require.NoError(t, store.Save(ctx, rec))

	stored, err := backend.Load(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Input)
	assert.Empty(t, stored.FinalState)
	assert.NotContains(t, stored.Tape, "0001")
	assert.Equal(t, 4, stored.Steps)
	assert.Equal(t, domain.VerdictAccepted, stored.Verdict)

	loaded, err := store.Load(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{rec.ID}, ids)

	require.NoError(t, store.Delete(ctx, rec.ID))
	_, err = store.Load(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	oldMW, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, err)
	require.NoError(t, oldMW(backend).Save(ctx, sampleRecord()))

	rotated, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	require.NoError(t, err)
	loaded, err := rotated(backend).Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "0001", loaded.Input)

	newOnly, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})
	require.NoError(t, err)
	_, err = newOnly(backend).Load(ctx, "run-1")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestEncryptionMiddleware_Errors(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)

	ctx := context.Background()
	backend := memory.NewStore()
	require.NoError(t, backend.Save(ctx, sampleRecord()))

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	_, err = mw(backend).Load(ctx, "run-1")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	ports.RunStoreContract(t, mw(memory.NewStore()))
}
