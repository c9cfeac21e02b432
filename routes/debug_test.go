package routes

import (
	"net/http"
	"testing"

	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/services"
	"notion-blocks/blockmirror/testutils"

	"github.com/buger/jsonparser"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)
	router := gin.New()
	SetupDebugRoutes(router.Group("/api/v1"), db)

	block, err := services.NewBlockService(models.DefaultMaxDepth).
		CreateBlock(db, "integration-1", models.QuoteFromString("q").ToStructure())
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/api/v1/debug/block-exists/"+block.Metadata().ID().String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	exists, _ := jsonparser.GetBoolean(w.Body.Bytes(), "exists")
	assert.True(t, exists)

	w = serve(router, http.MethodGet, "/api/v1/debug/event-queue", "")
	assert.Equal(t, http.StatusOK, w.Code)
	pending, _ := jsonparser.GetInt(w.Body.Bytes(), "pending_events")
	assert.Equal(t, int64(1), pending)
}
