// Package router 管理路由配置，用于设置HTTP服务的路由.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/handle"
	"github.com/yemou/archivault/pkg/middleware"
)

// RegisterSchedulerRoutes 注册调度器相关路由（仅管理员可见）.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	sched := g.Group("/scheduler", middleware.RequireMinRole(middleware.RoleAdmin))
	{
		sched.GET("/jobs", handle.SchedulerJobs)

		sched.POST("/jobs/stop", handle.SchedulerStopJobs)

		sched.DELETE("/jobs/:id", handle.SchedulerRemoveJob)

		sched.GET("/queue/waiting", handle.SchedulerQueueWaiting)
	}
}
