package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Vinicius-Leon/leons-cupcake/pkg/errors"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestFileStore_SetGet(t *testing.T) {
	store, _ := newTestFileStore(t)

	require.NoError(t, store.Set(KeyToken, []byte("abc.def.ghi")))

	got, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc.def.ghi"), got)
}

func TestFileStore_Get_Missing(t *testing.T) {
	store, _ := newTestFileStore(t)

	got, err := store.Get("nope")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStore_Get_MissingFile(t *testing.T) {
	// No Set has happened yet, so storage.json does not exist.
	store, dir := newTestFileStore(t)

	_, statErr := os.Stat(filepath.Join(dir, storageFile))
	require.True(t, os.IsNotExist(statErr))

	_, err := store.Get(KeyCart)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStore_Overwrite(t *testing.T) {
	store, _ := newTestFileStore(t)

	require.NoError(t, store.Set(KeyUser, []byte(`{"nome":"A"}`)))
	require.NoError(t, store.Set(KeyUser, []byte(`{"nome":"B"}`)))

	got, err := store.Get(KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"B"}`, string(got))
}

func TestFileStore_Delete(t *testing.T) {
	store, _ := newTestFileStore(t)

	require.NoError(t, store.Set(KeyCart, []byte(`[]`)))
	require.NoError(t, store.Delete(KeyCart))

	_, err := store.Get(KeyCart)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStore_Delete_Idempotent(t *testing.T) {
	store, _ := newTestFileStore(t)

	assert.NoError(t, store.Delete("missing"))
	assert.NoError(t, store.Delete("missing"))
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store, _ := newTestFileStore(t)

	require.NoError(t, store.Set(KeyToken, []byte("tok")))
	require.NoError(t, store.Set(KeyCart, []byte(`[{"id_produto":1}]`)))
	require.NoError(t, store.Delete(KeyToken))

	got, err := store.Get(KeyCart)
	require.NoError(t, err)
	assert.Contains(t, string(got), "id_produto")
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	store, dir := newTestFileStore(t)
	require.NoError(t, store.Set(KeyCart, []byte(`[{"id_produto":7,"quantidade":2}]`)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := reopened.Get(KeyCart)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"id_produto":7`)
}

func TestFileStore_CorruptedFile(t *testing.T) {
	store, dir := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, storageFile), []byte("{{garbage"), 0o600))

	// Corrupted contents degrade to an empty store rather than an error.
	_, err := store.Get(KeyToken)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Writes still work afterwards.
	require.NoError(t, store.Set(KeyToken, []byte("tok")))
	got, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), got)
}
