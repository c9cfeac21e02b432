package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/services"
	"notion-blocks/blockmirror/testutils"

	"github.com/buger/jsonparser"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testBlockID = "123e4567-e89b-12d3-a456-426614174000"

func persistedParagraph(t *testing.T, text string) models.Block {
	t.Helper()
	data := models.ParagraphFromString(text).ToStructure()
	data["id"] = testBlockID
	data["created_time"] = "2024-05-01T12:00:00.000Z"
	data["last_edited_time"] = "2024-05-01T12:00:00.000Z"
	block, err := models.BlockFromStructure(data)
	require.NoError(t, err)
	return block
}

func setupBlockRouter(service services.BlockServiceInterface) (*gin.Engine, *database.Database) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := &database.Database{}

	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("integrationID", "integration-1")
		c.Next()
	})
	RegisterBlockRoutes(group, db, service)
	return router, db
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBlock(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	t.Run("Invalid JSON", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/api/v1/blocks", "invalid json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		code, _ := jsonparser.GetString(w.Body.Bytes(), "code")
		assert.Equal(t, "validation_error", code)
	})

	t.Run("Validation Error", func(t *testing.T) {
		mockService.On("CreateBlock", db, "integration-1", mock.MatchedBy(func(s models.Structure) bool {
			return s["type"] == "paragraph" && s["paragraph"] == nil
		})).Return(nil, &models.SchemaError{Path: "paragraph", Reason: "missing required field"}).Once()

		w := serve(router, http.MethodPost, "/api/v1/blocks", `{"type":"paragraph"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		path, _ := jsonparser.GetString(w.Body.Bytes(), "path")
		assert.Equal(t, "paragraph", path)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		mockService.On("CreateBlock", db, "integration-1", mock.Anything).
			Return(nil, &models.UnknownBlockTypeError{Type: "embed"}).Once()

		w := serve(router, http.MethodPost, "/api/v1/blocks", `{"type":"embed","embed":{}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Valid Block", func(t *testing.T) {
		mockService.On("CreateBlock", db, "integration-1", mock.Anything).
			Return(persistedParagraph(t, "hello"), nil).Once()

		w := serve(router, http.MethodPost, "/api/v1/blocks",
			`{"type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"hello"}}]}}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		id, _ := jsonparser.GetString(w.Body.Bytes(), "id")
		assert.Equal(t, testBlockID, id)
		content, _ := jsonparser.GetString(w.Body.Bytes(), "paragraph", "rich_text", "[0]", "plain_text")
		assert.Equal(t, "hello", content)
	})

	mockService.AssertExpectations(t)
}

func TestGetBlock(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	mockService.On("GetBlock", db, testBlockID).Return(persistedParagraph(t, "found"), nil)
	mockService.On("GetBlock", db, "123e4567-e89b-12d3-a456-426614174001").Return(nil, services.ErrBlockNotFound)
	mockService.On("GetBlock", db, "bogus").Return(nil, services.ErrInvalidInput)
	mockService.On("GetBlock", db, "123e4567-e89b-12d3-a456-426614174002").Return(nil, errors.New("connection reset"))
	mockService.On("GetBlock", db, "123e4567-e89b-12d3-a456-426614174003").
		Return(nil, fmt.Errorf("%w: block 123e4567-e89b-12d3-a456-426614174003: bad rich_text", services.ErrCorruptBlock))

	t.Run("Block Found", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/blocks/"+testBlockID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		blockType, _ := jsonparser.GetString(w.Body.Bytes(), "type")
		assert.Equal(t, "paragraph", blockType)
	})

	t.Run("Block Not Found", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/blocks/123e4567-e89b-12d3-a456-426614174001", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/blocks/bogus", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Internal Error", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/blocks/123e4567-e89b-12d3-a456-426614174002", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("Corrupt Stored Block", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/blocks/123e4567-e89b-12d3-a456-426614174003", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		_, _, _, err := jsonparser.Get(w.Body.Bytes(), "path")
		assert.Error(t, err)
	})
}

func TestListChildren(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	mockService.On("ListChildren", db, testBlockID).Return([]models.Block{
		models.ParagraphFromString("one"),
		models.NewDivider(),
	}, nil)

	w := serve(router, http.MethodGet, "/api/v1/blocks/"+testBlockID+"/children", "")
	assert.Equal(t, http.StatusOK, w.Code)
	object, _ := jsonparser.GetString(w.Body.Bytes(), "object")
	assert.Equal(t, "list", object)
	second, _ := jsonparser.GetString(w.Body.Bytes(), "results", "[1]", "type")
	assert.Equal(t, "divider", second)
}

func TestAppendChildren(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	t.Run("Missing Children", func(t *testing.T) {
		w := serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID+"/children", `{"items":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		path, _ := jsonparser.GetString(w.Body.Bytes(), "path")
		assert.Equal(t, "children", path)
	})

	t.Run("Child Not An Object", func(t *testing.T) {
		w := serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID+"/children", `{"children":[{"type":"divider","divider":{}}, 3]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		path, _ := jsonparser.GetString(w.Body.Bytes(), "path")
		assert.Equal(t, "children[1]", path)
	})

	t.Run("Appended", func(t *testing.T) {
		parent := models.ToggleFromString("parent").AddChild(models.ParagraphFromString("child"))
		mockService.On("AppendChildren", db, "integration-1", testBlockID, mock.MatchedBy(func(children []models.Structure) bool {
			return len(children) == 1 && children[0]["type"] == "paragraph"
		})).Return(parent, nil).Once()

		w := serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID+"/children",
			`{"children":[{"type":"paragraph","paragraph":{"rich_text":[]}}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
		text, _ := jsonparser.GetString(w.Body.Bytes(), "toggle", "children", "[0]", "paragraph", "rich_text", "[0]", "plain_text")
		assert.Equal(t, "child", text)
	})

	t.Run("Parent Cannot Have Children", func(t *testing.T) {
		mockService.On("AppendChildren", db, "integration-1", testBlockID, mock.Anything).
			Return(nil, services.ErrNoChildren).Once()

		w := serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID+"/children",
			`{"children":[{"type":"divider","divider":{}}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockService.AssertExpectations(t)
}

func TestUpdateBlock(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	mockService.On("UpdateBlock", db, "integration-1", testBlockID, mock.MatchedBy(func(u models.Structure) bool {
		_, ok := u["paragraph"]
		return ok
	})).Return(persistedParagraph(t, "updated"), nil).Once()
	mockService.On("UpdateBlock", db, "integration-1", testBlockID, mock.MatchedBy(func(u models.Structure) bool {
		_, ok := u["toggle"]
		return ok
	})).Return(nil, &models.TypeMismatchError{Expected: models.ParagraphBlock, Actual: models.ToggleBlock}).Once()

	w := serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID, `{"paragraph":{"rich_text":[]}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID, `{"toggle":{"rich_text":[]}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockService.On("UpdateBlock", db, "integration-1", testBlockID, mock.MatchedBy(func(u models.Structure) bool {
		_, ok := u["archived"]
		return ok
	})).Return(nil, services.ErrBlockArchived).Once()

	w = serve(router, http.MethodPatch, "/api/v1/blocks/"+testBlockID, `{"archived":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	message, _ := jsonparser.GetString(w.Body.Bytes(), "error")
	assert.Equal(t, services.ErrBlockArchived.Error(), message)

	mockService.AssertExpectations(t)
}

func TestArchiveBlock(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	archived := persistedParagraph(t, "gone").Archive()
	mockService.On("ArchiveBlock", db, "integration-1", testBlockID).Return(archived, nil)

	w := serve(router, http.MethodDelete, "/api/v1/blocks/"+testBlockID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	flag, err := jsonparser.GetBoolean(w.Body.Bytes(), "archived")
	require.NoError(t, err)
	assert.True(t, flag)
}

func TestGetPlainText(t *testing.T) {
	mockService := new(testutils.MockBlockService)
	router, db := setupBlockRouter(mockService)

	mockService.On("GetPlainText", db, testBlockID, true).Return("a\nb", nil)
	mockService.On("GetPlainText", db, testBlockID, false).Return("a", nil)

	w := serve(router, http.MethodGet, "/api/v1/blocks/"+testBlockID+"/text?recursive=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	text, _ := jsonparser.GetString(w.Body.Bytes(), "text")
	assert.Equal(t, "a\nb", text)

	w = serve(router, http.MethodGet, "/api/v1/blocks/"+testBlockID+"/text", "")
	assert.Equal(t, http.StatusOK, w.Code)
	text, _ = jsonparser.GetString(w.Body.Bytes(), "text")
	assert.Equal(t, "a", text)

	w = serve(router, http.MethodGet, "/api/v1/blocks/"+testBlockID+"/text?recursive=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
