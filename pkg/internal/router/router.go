// Package router 管理路由配置，用于设置HTTP服务的路由规则.
// router 包只负责将路径和处理器绑定到 gin 引擎，
// 处理器的实现由 pkg/internal/handle 提供.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAll 挂载全部业务路由到 /api/v1.
func RegisterAll(engine *gin.Engine) {
	api := engine.Group("/api/v1")

	RegisterTokenRoutes(api)
	RegisterItemRoutes(api)
	RegisterSearchRoutes(api)
	RegisterFolderRoutes(api)
	RegisterTrashRoutes(api)
	RegisterStatsRoutes(api)
	RegisterHealthCheckRoute(api)
	RegisterSchedulerRoutes(api)
}
