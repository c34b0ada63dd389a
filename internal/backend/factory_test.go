package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbuddy/internal/config"
	"budgetbuddy/internal/storage"
)

func TestTypeIsValid(t *testing.T) {
	assert.True(t, JSONBackend.IsValid())
	assert.True(t, SQLiteBackend.IsValid())
	assert.True(t, MemoryBackend.IsValid())
	assert.False(t, Type("sheets").IsValid())
	assert.False(t, Type("").IsValid())
}

func TestCreateRepositoryMemory(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateRepository(context.Background(), &config.Config{
		DataBackend: "memory",
	})
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryRepository{}, result.Repository)
	assert.Nil(t, result.Cleanup)
}

func TestCreateRepositoryJSON(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateRepository(context.Background(), &config.Config{
		DataBackend: "json",
		LedgerPath:  filepath.Join(t.TempDir(), "records.json"),
	})
	require.NoError(t, err)
	assert.IsType(t, &storage.JSONRepository{}, result.Repository)
	assert.Nil(t, result.Cleanup)
}

func TestCreateRepositorySQLite(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateRepository(context.Background(), &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &storage.SQLiteRepository{}, result.Repository)
	require.NotNil(t, result.Cleanup)
	assert.NoError(t, result.Cleanup())
}

func TestCreateRepositoryInvalidBackend(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.CreateRepository(context.Background(), &config.Config{
		DataBackend: "sheets",
	})
	assert.Error(t, err)
}
