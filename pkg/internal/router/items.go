package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/handle"
)

// RegisterTokenRoutes 注册凭证签发路由.
func RegisterTokenRoutes(g *gin.RouterGroup) {
	tokenRoutes := g.Group("/tokens")
	{
		// 直传凭证，上传完成后调用 POST /items 注册
		tokenRoutes.POST("/upload", handle.UploadToken)
		// 读取/预览凭证
		tokenRoutes.POST("/read", handle.ReadToken)
		// blob 补偿删除
		tokenRoutes.POST("/delete", handle.DeleteBlob)
	}
}

// RegisterItemRoutes 注册条目操作相关路由.
func RegisterItemRoutes(g *gin.RouterGroup) {
	itemRoutes := g.Group("/items")
	{
		// 注册条目（blob 直传完成后）
		itemRoutes.POST("", handle.SaveItem)
		// 服务端代传
		itemRoutes.POST("/upload", handle.UploadItemFile)
		// 目录列表
		itemRoutes.GET("", handle.ListItems)

		singleGroup := itemRoutes.Group("/:id")
		{
			singleGroup.GET("", handle.GetItem)
			singleGroup.PUT("", handle.EditItemMetadata)
			// 永久删除（含 blob 与全部投影）
			singleGroup.DELETE("", handle.DeleteItem)
			singleGroup.POST("/move", handle.MoveItem)
			singleGroup.POST("/trash", handle.TrashItem)
			singleGroup.POST("/download", handle.DownloadItem)
		}
	}

	// 上传历史（用户档案投影）
	g.GET("/uploads", handle.ListUploads)
}

// RegisterSearchRoutes 注册搜索相关路由.
func RegisterSearchRoutes(g *gin.RouterGroup) {
	searchRoutes := g.Group("/search")
	{
		searchRoutes.POST("", handle.Search)
		// 会话内重排序，不重查索引
		searchRoutes.POST("/resort", handle.Resort)
	}
}

// RegisterFolderRoutes 注册目录相关路由.
func RegisterFolderRoutes(g *gin.RouterGroup) {
	folderRoutes := g.Group("/folders")
	{
		folderRoutes.POST("", handle.CreateFolder)

		singleGroup := folderRoutes.Group("/:id")
		{
			// 重命名，路径级联更新
			singleGroup.PUT("", handle.RenameFolder)
			// 删除，子目录级联删除，条目进回收站
			singleGroup.DELETE("", handle.DeleteFolder)
		}
	}
}
