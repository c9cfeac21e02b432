package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmptyParagraph(t *testing.T) {
	paragraph := NewParagraph()

	assert.Empty(t, paragraph.Text())
	assert.Empty(t, paragraph.Children())
}

func TestParagraphFromString(t *testing.T) {
	paragraph := ParagraphFromString("Dummy paragraph.")

	assert.Equal(t, "Dummy paragraph.", paragraph.ToPlainText())
}

func TestParagraphFromStructure(t *testing.T) {
	paragraph, err := ParagraphFromStructure(mustStructure(t, paragraphFixture))
	require.NoError(t, err)

	assert.Len(t, paragraph.Text(), 2)
	assert.Empty(t, paragraph.Children())
	assert.Equal(t, "Notion paragraphs rock!", paragraph.ToPlainText())
	assert.False(t, paragraph.Metadata().Archived())

	rock := paragraph.Text()[1]
	assert.True(t, rock.Annotations().Bold)
	assert.Equal(t, "red", rock.Annotations().Color)
}

func TestParagraphRoundTrip(t *testing.T) {
	data := mustStructure(t, paragraphFixture)

	paragraph, err := ParagraphFromStructure(data)
	require.NoError(t, err)

	assertStructure(t, data, paragraph.ToStructure())
}

func TestParagraphChildrenAlwaysEncoded(t *testing.T) {
	data := mustStructure(t, paragraphFixture)
	delete(bodyOf(t, data), "children")

	paragraph, err := ParagraphFromStructure(data)
	require.NoError(t, err)

	children, ok := bodyOf(t, paragraph.ToStructure())["children"]
	require.True(t, ok)
	assert.Equal(t, []interface{}{}, children)
}

func TestParagraphErrorOnWrongType(t *testing.T) {
	data := mustStructure(t, paragraphFixture)
	data["type"] = "wrong-type"

	_, err := ParagraphFromStructure(data)

	assert.ErrorIs(t, err, ErrSchema)
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestParagraphToStructureOmitsIdentity(t *testing.T) {
	s := ParagraphFromString("Simple paragraph").ToStructure()

	assert.NotContains(t, s, "id")
	assert.NotContains(t, s, "created_time")
	assert.NotContains(t, s, "last_edited_time")
	assert.Equal(t, "block", s["object"])
	assert.Equal(t, "paragraph", s["type"])
}

func TestParagraphUpdatesKeepOriginal(t *testing.T) {
	original := ParagraphFromString("A paragraph")

	appended := original.AddText(RichTextFromString(" can be extended."))
	replaced := original.ChangeText(RichTextFromString("Replaced"))

	assert.Equal(t, "A paragraph", original.ToPlainText())
	assert.Equal(t, "A paragraph can be extended.", appended.ToPlainText())
	assert.Equal(t, "Replaced", replaced.ToPlainText())
}
