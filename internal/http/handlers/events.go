package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/events/recent
// Open UI views poll this to notice pricing changes made elsewhere.
func RecentEvents(c *gin.Context) {
	d := getDeps()
	if d.Recorder == nil {
		c.JSON(http.StatusOK, gin.H{"events": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": d.Recorder.Recent()})
}
