package handle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/log"
)

const (
	// MaxFileSize 最大文件大小限制.
	MaxFileSize = 100 * 1024 * 1024 // 100MB
)

// SaveItem blob 上传完成后注册归档条目并触发同步工作流.
//
//	@Summary		注册归档条目
//	@Description	客户端直传完成后调用，登记主记录并同步搜索索引、分类投影与用户档案
//	@Tags			条目
//	@Accept			json
//	@Produce		json
//	@Param			item	body		types.SaveItemRequest	true	"条目注册请求"
//	@Success		200		{object}	types.SaveItemResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/api/v1/items [post]
func SaveItem(c *gin.Context) {
	l := log.Logger()

	var req types.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if req.Size > MaxFileSize {
		l.Warn().Int64("size", req.Size).Msg("file size exceeds limit")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 100MB limit"})

		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		l.Warn().Err(err).Msg("missing or invalid user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})

		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	resp, err := svc.SaveItem(c.Request.Context(), user, &req)
	if err != nil {
		l.Error().Err(err).Str("name", req.Name).Msg("save item failed")
		respondError(c, err)

		return
	}

	l.Info().Str("item", resp.Item.ID).Str("workflow", resp.WorkflowID).
		Bool("degraded", resp.Degraded).Msg("item saved")
	c.JSON(http.StatusOK, resp)
}

// GetItem 获取条目详情（累加查看计数）.
//
//	@Summary	条目详情
//	@Tags		条目
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.ItemInfo
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/items/{id} [get]
func GetItem(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	info, err := svc.GetItem(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// EditItemMetadata 编辑条目元数据并同步搜索索引.
//
//	@Summary	编辑条目元数据
//	@Tags		条目
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"条目 ID"
//	@Param		body	body		types.EditItemMetadataRequest	true	"元数据"
//	@Success	200		{object}	types.ItemInfo
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/items/{id} [put]
func EditItemMetadata(c *gin.Context) {
	l := log.Logger()

	var req types.EditItemMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	info, err := svc.EditMetadata(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		l.Error().Err(err).Str("item", c.Param("id")).Msg("edit metadata failed")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, info)
}

// MoveItem 移动条目到新目录.
//
//	@Summary	移动条目
//	@Tags		条目
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"条目 ID"
//	@Param		body	body		types.MoveItemRequest	true	"目标目录"
//	@Success	200		{object}	types.ItemActionResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/items/{id}/move [post]
func MoveItem(c *gin.Context) {
	var req types.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	if err := svc.MoveItem(c.Request.Context(), user, c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ItemActionResponse{ItemID: c.Param("id"), Message: "moved"})
}

// DeleteItem 永久删除条目及其全部投影.
//
//	@Summary	永久删除条目
//	@Tags		条目
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.ItemActionResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/items/{id} [delete]
func DeleteItem(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	if err := svc.DeleteItem(c.Request.Context(), user, c.Param("id")); err != nil {
		l.Error().Err(err).Str("item", c.Param("id")).Msg("delete item failed")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.ItemActionResponse{ItemID: c.Param("id"), Message: "deleted"})
}

// TrashItem 将条目移入回收站.
//
//	@Summary	条目移入回收站
//	@Tags		条目
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.ItemActionResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/items/{id}/trash [post]
func TrashItem(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	if err := svc.TrashItem(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ItemActionResponse{ItemID: c.Param("id"), Message: "trashed"})
}

// DownloadItem 累加下载计数并签发下载凭证.
//
//	@Summary	下载条目
//	@Tags		条目
//	@Produce	json
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.ReadTokenResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/items/{id}/download [post]
func DownloadItem(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	token, err := svc.RecordDownload(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// ListItems 列出目录下的条目与子目录.
//
//	@Summary	目录列表
//	@Tags		条目
//	@Produce	json
//	@Param		path	query		string	false	"目录路径，空为根目录"
//	@Success	200		{object}	types.ListItemsResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/items [get]
func ListItems(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	resp, err := svc.ListPath(c.Request.Context(), user, c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUploads 返回用户档案中的上传历史.
//
//	@Summary	上传历史
//	@Tags		条目
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/v1/uploads [get]
func ListUploads(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	items, err := svc.Uploads(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// UploadItemFile 服务端代传：multipart 收文件，签发凭证、直传、登记一气呵成.
// 大文件建议走 POST /tokens/upload 的客户端直传.
//
//	@Summary		上传并登记文件
//	@Description	multipart 表单上传，服务端完成凭证签发、blob 直传与条目登记
//	@Tags			条目
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"文件"
//	@Param			path		formData	string	false	"目标目录，空为根目录"
//	@Param			title		formData	string	false	"标题"
//	@Param			description	formData	string	false	"描述"
//	@Param			tags		formData	string	false	"标签，逗号分隔"
//	@Param			category	formData	string	false	"分类"
//	@Success		200			{object}	types.SaveItemResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/api/v1/items/upload [post]
func UploadItemFile(c *gin.Context) {
	l := log.Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	if fileHeader.Size > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 100MB limit"})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer src.Close()

	meta := types.ItemMetadataInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}
	if tags := strings.TrimSpace(c.PostForm("tags")); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				meta.Tags = append(meta.Tags, t)
			}
		}
	}

	svc := service.NewArchiveService(c.Request.Context())

	resp, err := svc.UploadFile(c.Request.Context(), user, &types.UploadTokenRequest{
		FileName: fileHeader.Filename,
		FileType: fileHeader.Header.Get("Content-Type"),
		FileSize: fileHeader.Size,
		Folder:   c.PostForm("path"),
	}, meta, src, nil)
	if err != nil {
		l.Error().Err(err).Str("file", fileHeader.Filename).Msg("upload failed")
		respondError(c, err)

		return
	}

	l.Info().Str("item", resp.Item.ID).Str("workflow", resp.WorkflowID).
		Bool("degraded", resp.Degraded).Msg("file uploaded and registered")
	c.JSON(http.StatusOK, resp)
}
