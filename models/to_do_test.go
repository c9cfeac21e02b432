package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDoCheck(t *testing.T) {
	todo := ToDoFromString("Write tests")

	checked := todo.Check()

	assert.False(t, todo.IsChecked())
	assert.True(t, checked.IsChecked())
	assert.False(t, checked.Uncheck().IsChecked())
	assert.Equal(t, "Write tests", checked.ToPlainText())
}

func TestToDoFromStructure(t *testing.T) {
	data := Structure{
		"object":       "block",
		"archived":     false,
		"has_children": false,
		"type":         "to_do",
		"to_do": map[string]interface{}{
			"rich_text": []interface{}{textSpan("Ship it")},
			"checked":   true,
		},
	}

	todo, err := ToDoFromStructure(data)
	require.NoError(t, err)

	assert.True(t, todo.IsChecked())
	assert.Equal(t, "Ship it", todo.ToPlainText())
	assert.Equal(t, true, bodyOf(t, todo.ToStructure())["checked"])
}

func TestToDoRejectsMalformedChecked(t *testing.T) {
	data := ToDoFromString("x").ToStructure()
	bodyOf(t, data)["checked"] = "yes"

	_, err := ToDoFromStructure(data)

	assert.ErrorIs(t, err, ErrSchema)
	assert.Equal(t, "to_do.checked", ErrorPath(err))
}

func TestToDoPartialUpdate(t *testing.T) {
	update := ToDoFromString("x").Check().ToPartialUpdateStructure()

	body, ok := objectOf(update["to_do"])
	require.True(t, ok)
	assert.Equal(t, true, body["checked"])
	assert.Equal(t, false, update["archived"])
}
