package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/handle"
)

// RegisterStatsRoutes 注册统计相关路由.
func RegisterStatsRoutes(g *gin.RouterGroup) {
	statsRoutes := g.Group("/stats")
	{
		statsRoutes.GET("", handle.StatsOverview) // 汇总、类型分布与趋势
		statsRoutes.GET("/trend", handle.StatsTrend)
	}
}
