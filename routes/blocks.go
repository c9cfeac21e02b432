package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/services"
	"notion-blocks/blockmirror/utils/logger"

	"github.com/gin-gonic/gin"
)

func RegisterBlockRoutes(group *gin.RouterGroup, db *database.Database, blockService services.BlockServiceInterface) {
	group.POST("/blocks", func(c *gin.Context) { CreateBlock(c, db, blockService) })

	group.GET("/blocks/:id", func(c *gin.Context) { GetBlock(c, db, blockService) })
	group.PATCH("/blocks/:id", func(c *gin.Context) { UpdateBlock(c, db, blockService) })
	group.DELETE("/blocks/:id", func(c *gin.Context) { ArchiveBlock(c, db, blockService) })

	group.GET("/blocks/:id/children", func(c *gin.Context) { ListChildren(c, db, blockService) })
	group.PATCH("/blocks/:id/children", func(c *gin.Context) { AppendChildren(c, db, blockService) })
	group.GET("/blocks/:id/text", func(c *gin.Context) { GetPlainText(c, db, blockService) })
}

// respondError maps service and decode errors to HTTP responses. Decode
// errors carry the path of the offending field.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrSchema),
		errors.Is(err, models.ErrTypeMismatch),
		errors.Is(err, models.ErrUnknownBlockType):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "validation_error",
			"path":  models.ErrorPath(err),
		})
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNoChildren),
		errors.Is(err, services.ErrBlockArchived):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
	case errors.Is(err, services.ErrResourceExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// readStructure decodes the request body as a JSON object.
func readStructure(c *gin.Context) (models.Structure, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	data, err := models.UnmarshalStructure(body)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return data, true
}

func listResponse(blocks []models.Block) gin.H {
	results := make([]models.Structure, 0, len(blocks))
	for _, b := range blocks {
		results = append(results, b.ToStructure())
	}
	return gin.H{
		"object":   "list",
		"results":  results,
		"has_more": false,
	}
}

func CreateBlock(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	data, ok := readStructure(c)
	if !ok {
		return
	}

	block, err := blockService.CreateBlock(db, c.GetString("integrationID"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block.ToStructure())
}

func GetBlock(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	block, err := blockService.GetBlock(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, block.ToStructure())
}

func ListChildren(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	children, err := blockService.ListChildren(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(children))
}

func AppendChildren(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	data, ok := readStructure(c)
	if !ok {
		return
	}

	raw, ok := data["children"].([]interface{})
	if !ok {
		respondError(c, &models.SchemaError{Path: "children", Reason: "expected array of blocks"})
		return
	}
	children := make([]models.Structure, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			respondError(c, &models.SchemaError{
				Path:   fmt.Sprintf("children[%d]", i),
				Reason: fmt.Sprintf("expected block object, got %T", item),
			})
			return
		}
		children = append(children, models.Structure(obj))
	}

	parent, err := blockService.AppendChildren(db, c.GetString("integrationID"), c.Param("id"), children)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parent.ToStructure())
}

func UpdateBlock(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	update, ok := readStructure(c)
	if !ok {
		return
	}

	block, err := blockService.UpdateBlock(db, c.GetString("integrationID"), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, block.ToStructure())
}

func ArchiveBlock(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	block, err := blockService.ArchiveBlock(db, c.GetString("integrationID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, block.ToStructure())
}

func GetPlainText(c *gin.Context, db *database.Database, blockService services.BlockServiceInterface) {
	recursive := false
	if raw := c.Query("recursive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recursive must be a boolean"})
			return
		}
		recursive = parsed
	}

	text, err := blockService.GetPlainText(db, c.Param("id"), recursive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"object":    "text",
		"block_id":  c.Param("id"),
		"recursive": recursive,
		"text":      text,
	})
}
