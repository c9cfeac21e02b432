package routes

import (
	"net/http"
	"time"

	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"

	"github.com/gin-gonic/gin"
)

// SetupDebugRoutes sets up routes for debugging. They are only mounted in
// development.
func SetupDebugRoutes(group *gin.RouterGroup, db *database.Database) {
	debugGroup := group.Group("/debug")
	{
		debugGroup.GET("/block-exists/:id", func(c *gin.Context) {
			var record models.BlockRecord
			result := db.DB.Where("id = ?", c.Param("id")).First(&record)

			if result.Error != nil {
				c.JSON(http.StatusOK, gin.H{
					"exists": false,
					"error":  result.Error.Error(),
					"time":   time.Now(),
				})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"exists":    true,
				"id":        record.ID,
				"type":      record.Type,
				"parent_id": record.ParentID,
				"position":  record.Position,
				"archived":  record.Archived,
				"time":      time.Now(),
			})
		})

		debugGroup.GET("/event-queue", func(c *gin.Context) {
			var events []models.Event
			if err := db.DB.Where("dispatched = ?", false).Order("timestamp ASC").Find(&events).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"pending_events": len(events),
				"events":         events,
				"time":           time.Now(),
			})
		})
	}
}
