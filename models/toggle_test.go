package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToggle(t *testing.T) {
	toggle := NewToggle()

	assert.Empty(t, toggle.Text())
	assert.Empty(t, toggle.Children())
	assert.Equal(t, ToggleBlock, toggle.Metadata().Type())
	assert.False(t, toggle.Metadata().IsPersisted())
	assert.False(t, toggle.Metadata().Archived())
	assert.False(t, toggle.Metadata().HasChildren())
	assert.Equal(t, "", toggle.ToPlainText())
}

func TestToggleFromString(t *testing.T) {
	toggle := ToggleFromString("Dummy toggle.")

	require.Len(t, toggle.Text(), 1)
	assert.Equal(t, "Dummy toggle.", toggle.ToPlainText())
	assert.Empty(t, toggle.Children())
}

func TestToggleFromStructure(t *testing.T) {
	toggle, err := ToggleFromStructure(mustStructure(t, toggleFixture))
	require.NoError(t, err)

	assert.Equal(t, "8f2e1c3a-5b6d-4e7f-9a0b-1c2d3e4f5a6b", toggle.Metadata().ID().String())
	assert.Equal(t, "Click me", toggle.ToPlainText())
	assert.True(t, toggle.Metadata().HasChildren())

	children := toggle.Children()
	require.Len(t, children, 2)

	paragraph, ok := children[0].(Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Hidden", paragraph.ToPlainText())
	assert.Equal(t, "https://example.com", paragraph.Text()[0].Link())

	nested, ok := children[1].(Toggle)
	require.True(t, ok)
	require.Len(t, nested.Children(), 1)
	assert.IsType(t, Divider{}, nested.Children()[0])
}

func TestToggleRoundTrip(t *testing.T) {
	data := mustStructure(t, toggleFixture)

	toggle, err := ToggleFromStructure(data)
	require.NoError(t, err)

	assertStructure(t, data, toggle.ToStructure())
}

func TestToggleNestedChildrenRoundTrip(t *testing.T) {
	data := mustStructure(t, toggleFixture)
	children, _ := arrayOf(bodyOf(t, data)["children"])

	toggle, err := ToggleFromStructure(data)
	require.NoError(t, err)

	for i, child := range toggle.Children() {
		assertStructure(t, children[i], child.ToStructure())
	}
}

func TestToggleEmptyChildrenRoundTrip(t *testing.T) {
	data := Structure{
		"object":       "block",
		"archived":     false,
		"has_children": false,
		"type":         "toggle",
		"toggle": map[string]interface{}{
			"rich_text": []interface{}{},
			"children":  []interface{}{},
		},
	}

	toggle, err := ToggleFromStructure(data)
	require.NoError(t, err)

	assertStructure(t, data, toggle.ToStructure())
}

func TestToggleFromStructureErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(s Structure)
		check  func(t *testing.T, err error)
	}{
		{
			name: "Metadata of another type",
			mutate: func(s Structure) {
				s["type"] = "paragraph"
			},
			check: func(t *testing.T, err error) {
				var mismatch *TypeMismatchError
				require.True(t, errors.As(err, &mismatch))
				assert.Equal(t, ToggleBlock, mismatch.Expected)
				assert.Equal(t, ParagraphBlock, mismatch.Actual)
			},
		},
		{
			name: "Missing toggle content",
			mutate: func(s Structure) {
				delete(s, "toggle")
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSchema)
				assert.Equal(t, "toggle", ErrorPath(err))
			},
		},
		{
			name: "Missing rich text",
			mutate: func(s Structure) {
				delete(bodyOf(t, s), "rich_text")
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSchema)
				assert.Equal(t, "toggle.rich_text", ErrorPath(err))
			},
		},
		{
			name: "Malformed timestamp",
			mutate: func(s Structure) {
				s["created_time"] = "yesterday"
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSchema)
				assert.Equal(t, "created_time", ErrorPath(err))
			},
		},
		{
			name: "Broken nested span",
			mutate: func(s Structure) {
				children, _ := arrayOf(bodyOf(t, s)["children"])
				nested, _ := objectOf(children[0])
				spans, _ := arrayOf(bodyOf(t, nested)["rich_text"])
				span, _ := objectOf(spans[0])
				text, _ := objectOf(span["text"])
				delete(text, "content")
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSchema)
				assert.Equal(t, "toggle.children[0].paragraph.rich_text[0].text.content", ErrorPath(err))
			},
		},
		{
			name: "Unknown nested block",
			mutate: func(s Structure) {
				children, _ := arrayOf(bodyOf(t, s)["children"])
				nested, _ := objectOf(children[1])
				grandchildren, _ := arrayOf(bodyOf(t, nested)["children"])
				leaf, _ := objectOf(grandchildren[0])
				leaf["type"] = "embed"
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownBlockType)
				assert.Equal(t, "toggle.children[1].toggle.children[0]", ErrorPath(err))
			},
		},
		{
			name: "Children without has_children",
			mutate: func(s Structure) {
				s["has_children"] = false
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSchema)
				assert.Equal(t, "has_children", ErrorPath(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := mustStructure(t, toggleFixture)
			tc.mutate(data)

			_, err := ToggleFromStructure(data)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestToggleChangeText(t *testing.T) {
	original := ToggleFromString("This is an old toggle")

	updated := original.ChangeText(
		RichTextFromString("This is a "),
		RichTextFromString("new toggle"),
	)

	assert.Equal(t, "This is an old toggle", original.ToPlainText())
	assert.Equal(t, "This is a new toggle", updated.ToPlainText())
}

func TestToggleAddText(t *testing.T) {
	original := ToggleFromString("A toggle")

	updated := original.AddText(RichTextFromString(" can be extended."))

	assert.Equal(t, "A toggle", original.ToPlainText())
	assert.Equal(t, "A toggle can be extended.", updated.ToPlainText())
}

func TestToggleChangeChildren(t *testing.T) {
	toggle := ToggleFromString("Simple toggle.").ChangeChildren(
		ParagraphFromString("Nested paragraph 1"),
		ParagraphFromString("Nested paragraph 2"),
	)

	require.Len(t, toggle.Children(), 2)
	assert.True(t, toggle.Metadata().HasChildren())
	assert.Equal(t, "Nested paragraph 1", toggle.Children()[0].ToPlainText())
	assert.Equal(t, "Nested paragraph 2", toggle.Children()[1].ToPlainText())

	emptied := toggle.ChangeChildren()
	assert.Empty(t, emptied.Children())
	assert.False(t, emptied.Metadata().HasChildren())
	assert.Len(t, toggle.Children(), 2)
}

func TestToggleAddChild(t *testing.T) {
	toggle := ToggleFromString("Simple toggle.")
	withChild := toggle.AddChild(ParagraphFromString("Nested paragraph"))

	require.Len(t, withChild.Children(), 1)
	assert.Equal(t, "Nested paragraph", withChild.Children()[0].ToPlainText())
	assert.True(t, withChild.Metadata().HasChildren())

	again := withChild.AddChild(ParagraphFromString("Second"))
	assert.True(t, again.Metadata().HasChildren())
	assert.Len(t, again.Children(), 2)
	assert.Len(t, withChild.Children(), 1)
	assert.Empty(t, toggle.Children())
}

func TestToggleArchive(t *testing.T) {
	toggle := ToggleFromString("Archive me").AddChild(NewDivider())

	archived := toggle.Archive()

	assert.True(t, archived.Metadata().Archived())
	assert.False(t, toggle.Metadata().Archived())
	assert.Equal(t, "Archive me", archived.ToPlainText())
	assert.Len(t, ChildrenOf(archived), 1)
}

func TestToggleToStructure(t *testing.T) {
	toggle := ToggleFromString("Simple toggle")

	expected := Structure{
		"object":       "block",
		"archived":     false,
		"has_children": false,
		"type":         "toggle",
		"toggle": map[string]interface{}{
			"rich_text": []interface{}{
				map[string]interface{}{
					"plain_text": "Simple toggle",
					"href":       nil,
					"type":       "text",
					"text":       map[string]interface{}{"content": "Simple toggle", "link": nil},
					"annotations": map[string]interface{}{
						"bold":          false,
						"italic":        false,
						"strikethrough": false,
						"underline":     false,
						"code":          false,
						"color":         "default",
					},
				},
			},
			"children": []interface{}{},
		},
	}

	assertStructure(t, expected, toggle.ToStructure())
}

func TestTogglePartialUpdateStructure(t *testing.T) {
	toggle, err := ToggleFromStructure(mustStructure(t, toggleFixture))
	require.NoError(t, err)

	update := toggle.Archive().ToPartialUpdateStructure()

	assert.Len(t, update, 2)
	assert.Equal(t, true, update["archived"])
	body, ok := objectOf(update["toggle"])
	require.True(t, ok)
	assert.Len(t, body, 1)
	assert.Contains(t, body, "rich_text")
}

func TestToggleRejectsForeignMetadata(t *testing.T) {
	_, err := newToggle(NewBlockMetadata(ParagraphBlock), nil, nil)

	assert.ErrorIs(t, err, ErrTypeMismatch)
}
