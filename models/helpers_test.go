package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paragraphFixture = `{
	"object": "block",
	"id": "04a13895-f072-4814-8af7-cd11af127040",
	"created_time": "2021-10-18T17:09:00.000Z",
	"last_edited_time": "2021-10-18T17:09:00.000Z",
	"archived": false,
	"has_children": false,
	"type": "paragraph",
	"paragraph": {
		"rich_text": [
			{
				"plain_text": "Notion paragraphs ",
				"href": null,
				"type": "text",
				"text": {"content": "Notion paragraphs ", "link": null},
				"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"}
			},
			{
				"plain_text": "rock!",
				"href": null,
				"type": "text",
				"text": {"content": "rock!", "link": null},
				"annotations": {"bold": true, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "red"}
			}
		],
		"children": []
	}
}`

const toggleFixture = `{
	"object": "block",
	"id": "8f2e1c3a-5b6d-4e7f-9a0b-1c2d3e4f5a6b",
	"created_time": "2022-03-01T10:00:00.000Z",
	"last_edited_time": "2022-03-02T11:30:00.000Z",
	"archived": false,
	"has_children": true,
	"type": "toggle",
	"toggle": {
		"rich_text": [
			{
				"plain_text": "Click me",
				"href": null,
				"type": "text",
				"text": {"content": "Click me", "link": null},
				"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"}
			}
		],
		"children": [
			{
				"object": "block",
				"id": "1a2b3c4d-0000-4000-8000-000000000001",
				"created_time": "2022-03-01T10:00:00.000Z",
				"last_edited_time": "2022-03-01T10:00:00.000Z",
				"archived": false,
				"has_children": false,
				"type": "paragraph",
				"paragraph": {
					"rich_text": [
						{
							"plain_text": "Hidden",
							"href": "https://example.com",
							"type": "text",
							"text": {"content": "Hidden", "link": {"url": "https://example.com"}},
							"annotations": {"bold": false, "italic": true, "strikethrough": false, "underline": false, "code": false, "color": "default"}
						}
					],
					"children": []
				}
			},
			{
				"object": "block",
				"id": "1a2b3c4d-0000-4000-8000-000000000002",
				"created_time": "2022-03-01T10:00:00.000Z",
				"last_edited_time": "2022-03-01T10:00:00.000Z",
				"archived": false,
				"has_children": true,
				"type": "toggle",
				"toggle": {
					"rich_text": [],
					"children": [
						{
							"object": "block",
							"id": "1a2b3c4d-0000-4000-8000-000000000003",
							"created_time": "2022-03-01T10:00:00.000Z",
							"last_edited_time": "2022-03-01T10:00:00.000Z",
							"archived": false,
							"has_children": false,
							"type": "divider",
							"divider": {}
						}
					]
				}
			}
		]
	}
}`

func mustStructure(t *testing.T, raw string) Structure {
	t.Helper()
	s, err := UnmarshalStructure([]byte(raw))
	require.NoError(t, err)
	return s
}

// assertStructure compares two structures by their JSON encoding, so that
// Structure and plain map values compare equal.
func assertStructure(t *testing.T, expected, actual interface{}) {
	t.Helper()
	want, err := json.Marshal(expected)
	require.NoError(t, err)
	got, err := json.Marshal(actual)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

// textSpan builds a plain text span structure as request bodies carry it.
func textSpan(content string) map[string]interface{} {
	return map[string]interface{}{
		"type": "text",
		"text": map[string]interface{}{"content": content},
	}
}

// bodyOf returns the variant sub-structure of an encoded block.
func bodyOf(t *testing.T, s Structure) map[string]interface{} {
	t.Helper()
	tag, ok := s["type"].(string)
	require.True(t, ok)
	body, ok := objectOf(s[tag])
	require.True(t, ok)
	return body
}
