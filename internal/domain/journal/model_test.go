package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncMeta(t *testing.T) {
	now := time.Now()
	m := NewSyncMeta(now)

	assert.NotZero(t, m.ID)
	assert.Equal(t, int64(1), m.SyncVersion)
	assert.False(t, m.IsSynced)
	assert.False(t, m.IsDeleted)
	assert.Equal(t, now, m.CreatedAt)
	assert.Equal(t, now, m.UpdatedAt)
	assert.Nil(t, m.LastSyncTime)
}

func TestSyncMetaChanged(t *testing.T) {
	m := NewSyncMeta(time.Now())
	m.Synced(time.Now())
	require.True(t, m.IsSynced)

	later := time.Now().Add(time.Minute)
	m.Changed(later)

	assert.Equal(t, int64(2), m.SyncVersion)
	assert.False(t, m.IsSynced)
	assert.Equal(t, later, m.UpdatedAt)
}

func TestSyncMetaSoftDelete(t *testing.T) {
	m := NewSyncMeta(time.Now())
	m.Synced(time.Now())

	later := time.Now().Add(time.Minute)
	m.SoftDelete(later)

	assert.True(t, m.IsDeleted)
	assert.Equal(t, int64(1), m.SyncVersion, "deleting must not move the version")
	assert.False(t, m.IsSynced)
	assert.Equal(t, later, m.UpdatedAt)
}
