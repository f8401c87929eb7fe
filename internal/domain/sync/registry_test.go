package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(
		Entity{Type: TypeJournals},
		Entity{Type: TypeCategories},
	)

	e, err := r.Lookup(TypeJournals)
	require.NoError(t, err)
	assert.Equal(t, TypeJournals, e.Type)

	_, err = r.Lookup(EntityType("bookmarks"))
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestRegistryTypesKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry(
		Entity{Type: TypeTags},
		Entity{Type: TypeJournals},
		Entity{Type: TypeCategories},
	)

	assert.Equal(t, []EntityType{TypeTags, TypeJournals, TypeCategories}, r.Types())
}

func TestRegistryDefaultsCreateValidator(t *testing.T) {
	called := false
	r := NewRegistry(Entity{Type: TypeJournals, Validate: func(map[string]any) error {
		called = true
		return nil
	}})

	e, err := r.Lookup(TypeJournals)
	require.NoError(t, err)
	require.NotNil(t, e.ValidateCreate)
	require.NoError(t, e.ValidateCreate(nil))
	assert.True(t, called)
}

func TestRegistrySkipsDuplicates(t *testing.T) {
	first := Entity{Type: TypeJournals, Validate: func(map[string]any) error { return nil }}
	r := NewRegistry(first, Entity{Type: TypeJournals})

	require.Len(t, r.Types(), 1)
	e, err := r.Lookup(TypeJournals)
	require.NoError(t, err)
	assert.NotNil(t, e.Validate)
}
