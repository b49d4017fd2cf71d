// Package api 对外暴露 HTTP 路由注册入口，聚合内部 router 的分组注册.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/router"
)

// RegisterRoutes 注册归档服务的全部业务路由与 Swagger 文档路由.
func RegisterRoutes(e *gin.Engine) *gin.Engine {
	router.RegisterAll(e)
	router.RegisterSwaggerRoute(e)

	return e
}
