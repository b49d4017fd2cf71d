package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/handle"
	"github.com/yemou/archivault/pkg/middleware"
)

// RegisterTrashRoutes 注册回收站相关路由.
func RegisterTrashRoutes(g *gin.RouterGroup) {
	trashRoutes := g.Group("/trash")
	{
		trashRoutes.GET("", handle.ListTrash)

		// 单个条目操作
		singleGroup := trashRoutes.Group("/:id")
		{
			singleGroup.POST("/restore", handle.RestoreTrash)
			singleGroup.DELETE("", handle.PurgeTrash)
		}

		// 批量操作
		batchGroup := trashRoutes.Group("/batch")
		{
			batchGroup.POST("/restore", handle.RestoreTrashBatch)
			batchGroup.DELETE("", handle.PurgeTrashBatch)
		}

		// 过期清理（仅管理员可触发）
		trashRoutes.POST("/auto-clean", middleware.RequireMinRole(middleware.RoleAdmin), handle.AutoCleanTrash)
	}
}
