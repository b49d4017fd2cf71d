package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/log"
)

// CreateFolder 创建目录.
//
//	@Summary	创建目录
//	@Tags		目录
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateFolderRequest	true	"目录"
//	@Success	200		{object}	types.FolderInfo
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/folders [post]
func CreateFolder(c *gin.Context) {
	var req types.CreateFolderRequest
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

	folder, err := svc.CreateFolder(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, folder)
}

// RenameFolder 重命名目录并级联更新路径.
//
//	@Summary	重命名目录
//	@Tags		目录
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"目录 ID"
//	@Param		body	body		types.RenameFolderRequest	true	"新名称"
//	@Success	200		{object}	types.RenameFolderResponse
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/v1/folders/{id} [put]
func RenameFolder(c *gin.Context) {
	l := log.Logger()

	var req types.RenameFolderRequest
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

	resp, err := svc.RenameFolder(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		l.Error().Err(err).Str("folder", c.Param("id")).Msg("rename folder failed")
		respondError(c, err)

		return
	}

	l.Info().Str("folder", resp.Folder.ID).Int("moved_items", resp.MovedItems).
		Int("moved_folders", resp.MovedFolders).Msg("folder renamed")
	c.JSON(http.StatusOK, resp)
}

// DeleteFolder 删除目录，子目录级联删除，目录内条目进回收站.
//
//	@Summary	删除目录
//	@Tags		目录
//	@Produce	json
//	@Param		id	path		string	true	"目录 ID"
//	@Success	200	{object}	types.DeleteFolderResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/folders/{id} [delete]
func DeleteFolder(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	resp, err := svc.DeleteFolder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
