package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockMetadata(t *testing.T) {
	m := NewBlockMetadata(QuoteBlock)

	assert.Equal(t, QuoteBlock, m.Type())
	assert.False(t, m.IsPersisted())
	assert.True(t, m.CreatedTime().IsZero())
	assert.True(t, m.LastEditedTime().IsZero())
	assert.False(t, m.Archived())
	assert.False(t, m.HasChildren())
	assert.Equal(t, Structure{
		"object":       "block",
		"archived":     false,
		"has_children": false,
		"type":         "quote",
	}, m.ToStructure())
}

func TestBlockMetadataFromStructure(t *testing.T) {
	m, err := BlockMetadataFromStructure(mustStructure(t, paragraphFixture))
	require.NoError(t, err)

	assert.Equal(t, "04a13895-f072-4814-8af7-cd11af127040", m.ID().String())
	assert.True(t, m.IsPersisted())
	assert.Equal(t, time.Date(2021, 10, 18, 17, 9, 0, 0, time.UTC), m.CreatedTime())
	assert.Equal(t, ParagraphBlock, m.Type())

	s := m.ToStructure()
	assert.Equal(t, "2021-10-18T17:09:00.000Z", s["created_time"])
	assert.Equal(t, "2021-10-18T17:09:00.000Z", s["last_edited_time"])
}

func TestBlockMetadataTimestampsAreUTC(t *testing.T) {
	m, err := BlockMetadataFromStructure(Structure{
		"type":         "paragraph",
		"created_time": "2021-10-18T19:09:00.123+02:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2021-10-18T17:09:00.123Z", m.ToStructure()["created_time"])
}

func TestBlockMetadataFromStructureErrors(t *testing.T) {
	testCases := []struct {
		name string
		data Structure
		path string
	}{
		{"Missing type", Structure{"object": "block"}, "type"},
		{"Unknown type", Structure{"type": "wrong-type"}, "type"},
		{"Wrong object", Structure{"object": "page", "type": "paragraph"}, "object"},
		{"Malformed id", Structure{"type": "paragraph", "id": "not-a-uuid"}, "id"},
		{"Malformed timestamp", Structure{"type": "paragraph", "last_edited_time": "18/10/2021"}, "last_edited_time"},
		{"Non boolean archived", Structure{"type": "paragraph", "archived": "no"}, "archived"},
		{"Non boolean has_children", Structure{"type": "paragraph", "has_children": 1.0}, "has_children"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BlockMetadataFromStructure(tc.data)

			assert.ErrorIs(t, err, ErrSchema)
			assert.Equal(t, tc.path, ErrorPath(err))
		})
	}
}

func TestBlockMetadataTransforms(t *testing.T) {
	m := NewBlockMetadata(ToggleBlock)

	withChildren := m.UpdateHasChildren(true)
	archived := withChildren.Archive()

	assert.False(t, m.HasChildren())
	assert.True(t, withChildren.HasChildren())
	assert.False(t, withChildren.Archived())
	assert.True(t, archived.Archived())
	assert.True(t, archived.HasChildren())
	assert.Equal(t, ToggleBlock, archived.Type())
}

func TestCheckType(t *testing.T) {
	m := NewBlockMetadata(ToggleBlock)

	assert.NoError(t, m.CheckType(ToggleBlock))

	err := m.CheckType(ParagraphBlock)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.EqualError(t, err, `block type mismatch: expected "paragraph", got "toggle"`)
}
