package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivider(t *testing.T) {
	divider := NewDivider()

	assert.Equal(t, "", divider.ToPlainText())
	assert.Equal(t, map[string]interface{}{}, divider.ToStructure()["divider"])

	decoded, err := DividerFromStructure(divider.ToStructure())
	require.NoError(t, err)
	assert.Equal(t, DividerBlock, decoded.Metadata().Type())
}

func TestDividerRequiresContent(t *testing.T) {
	data := NewDivider().ToStructure()
	delete(data, "divider")

	_, err := DividerFromStructure(data)

	assert.ErrorIs(t, err, ErrSchema)
	assert.Equal(t, "divider", ErrorPath(err))
}

func TestDividerRejectsChildren(t *testing.T) {
	data := NewDivider().ToStructure()
	data["divider"] = map[string]interface{}{
		"children": []interface{}{ParagraphFromString("lost").ToStructure()},
	}

	_, err := BlockFromStructure(data)

	assert.ErrorIs(t, err, ErrSchema)
	assert.Equal(t, "divider.children", ErrorPath(err))
}

func TestDividerRejectsHasChildren(t *testing.T) {
	data := NewDivider().ToStructure()
	data["has_children"] = true

	_, err := DividerFromStructure(data)

	assert.ErrorIs(t, err, ErrSchema)
	assert.Equal(t, "has_children", ErrorPath(err))
}
