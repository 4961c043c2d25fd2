package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/pkg/response"
	"gorm.io/gorm"
)

// HealthHandler reports whether the database is reachable.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// CheckHealth GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		dbStatus = "error: " + err.Error()
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "unhealthy",
			Data:    gin.H{"database": dbStatus},
		})
		return
	}

	response.Success(c, gin.H{
		"status":   "healthy",
		"service":  "scenicadmin",
		"database": dbStatus,
	})
}
