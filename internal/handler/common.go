package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Giuseppe84/vespera/internal/service"
)

// fail maps a service error kind to its HTTP status. Anything unclassified
// is logged and surfaced as a generic failure, never verbatim.
func fail(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.KindBadRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case service.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// paramID parses a numeric path parameter; on failure it writes the 400
// response itself and returns false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
