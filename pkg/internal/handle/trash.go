package handle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/log"
)

// ListTrash 获取回收站列表.
//
//	@Summary	回收站列表
//	@Tags		回收站
//	@Produce	json
//	@Success	200	{object}	types.TrashListResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/trash [get]
func ListTrash(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	resp, err := svc.ListTrash(c.Request.Context(), user)
	if err != nil {
		l.Error().Err(err).Msg("trash list failed")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// batchAction 解析批量请求体并执行动作.
func batchAction(c *gin.Context, action func(user string, ids []string) (int, error), message string) {
	var req types.TrashBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	affected, err := action(user, req.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TrashActionResponse{Affected: affected, Message: message})
}

// singleAction 将路径参数包装成单元素批量动作.
func singleAction(c *gin.Context, action func(user string, ids []string) (int, error), message string) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	affected, err := action(user, []string{id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TrashActionResponse{Affected: affected, Message: message})
}

// RestoreTrash 单个恢复.
//
//	@Summary	恢复回收站条目
//	@Tags		回收站
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/trash/{id}/restore [post]
func RestoreTrash(c *gin.Context) {
	svc := service.NewArchiveService(c.Request.Context())
	singleAction(c, func(user string, ids []string) (int, error) {
		return svc.RestoreItems(c.Request.Context(), user, ids)
	}, "restored")
}

// PurgeTrash 单个永久删除.
//
//	@Summary	永久删除回收站条目
//	@Tags		回收站
//	@Param		id	path		string	true	"条目 ID"
//	@Success	200	{object}	types.TrashActionResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/trash/{id} [delete]
func PurgeTrash(c *gin.Context) {
	svc := service.NewArchiveService(c.Request.Context())
	singleAction(c, func(user string, ids []string) (int, error) {
		return svc.PurgeItems(c.Request.Context(), user, ids)
	}, "purged")
}

// RestoreTrashBatch 批量恢复.
//
//	@Summary	批量恢复回收站条目
//	@Tags		回收站
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.TrashBatchRequest	true	"条目 ID 列表"
//	@Success	200		{object}	types.TrashActionResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/trash/batch/restore [post]
func RestoreTrashBatch(c *gin.Context) {
	svc := service.NewArchiveService(c.Request.Context())
	batchAction(c, func(user string, ids []string) (int, error) {
		return svc.RestoreItems(c.Request.Context(), user, ids)
	}, "restored")
}

// PurgeTrashBatch 批量永久删除.
//
//	@Summary	批量永久删除回收站条目
//	@Tags		回收站
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.TrashBatchRequest	true	"条目 ID 列表"
//	@Success	200		{object}	types.TrashActionResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/trash/batch [delete]
func PurgeTrashBatch(c *gin.Context) {
	svc := service.NewArchiveService(c.Request.Context())
	batchAction(c, func(user string, ids []string) (int, error) {
		return svc.PurgeItems(c.Request.Context(), user, ids)
	}, "purged")
}

// AutoCleanTrash 清理删除时间早于给定时点的回收站条目.
//
//	@Summary	自动清理回收站
//	@Tags		回收站
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.TrashAutoCleanRequest	false	"清理条件，缺省为 30 天前"
//	@Success	200		{object}	types.TrashActionResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/trash/auto-clean [post]
func AutoCleanTrash(c *gin.Context) {
	l := log.Logger()

	var req types.TrashAutoCleanRequest
	_ = c.ShouldBindJSON(&req)

	before, ok := req.ParseBefore()
	if !ok {
		before = time.Now().UTC().AddDate(0, 0, -30)
	}

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewArchiveService(c.Request.Context())

	affected, err := svc.AutoClean(c.Request.Context(), user, before)
	if err != nil {
		l.Error().Err(err).Time("before", before).Msg("auto clean failed")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.TrashActionResponse{Affected: affected, Message: "cleaned"})
}
