package http

import "github.com/gin-gonic/gin"

// Register registers the issue routes under rg, one path per project
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:project", h.ListIssues)
	rg.POST("/:project", h.CreateIssue)
	rg.PUT("/:project", h.UpdateIssue)
	rg.DELETE("/:project", h.DeleteIssue)
}
