package postgres

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

// Pull ordering differs per table: entries come back most recent first,
// categories and tags alphabetically.
func TestChangedSinceQueryOrdering(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	entries := NewEntrySyncStore(nil, log).changedSinceQuery()
	assert.Contains(t, entries, "FROM journal_entries")
	assert.Contains(t, entries, "ORDER BY updated_at DESC")

	categories := NewCategorySyncStore(nil, log).changedSinceQuery()
	assert.Contains(t, categories, "FROM categories")
	assert.Contains(t, categories, "ORDER BY name")

	tags := NewTagSyncStore(nil, log).changedSinceQuery()
	assert.Contains(t, tags, "FROM tags")
	assert.Contains(t, tags, "ORDER BY name")
}
