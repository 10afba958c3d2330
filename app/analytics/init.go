package analytics

import "github.com/gin-gonic/gin"

func Init(r *gin.RouterGroup) {
	handler := NewHandler()

	group := r.Group("/analytics")
	group.POST("/devig", handler.Devig)
	group.POST("/kelly", handler.Kelly)
}
