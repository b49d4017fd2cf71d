package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/log"
)

// Search 执行一次搜索.
//
//	@Summary		搜索归档条目
//	@Description	关键词或向量模式搜索，支持类型/分类/日期/标签过滤与排序
//	@Tags			搜索
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.SearchRequest	true	"搜索请求"
//	@Success		200		{object}	types.SearchResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		503		{object}	map[string]string	"向量服务不可用"
//	@Router			/api/v1/search [post]
func Search(c *gin.Context) {
	l := log.Logger()

	var req types.SearchRequest
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

	resp, err := svc.Search(c.Request.Context(), user, &req)
	if err != nil {
		l.Error().Err(err).Str("query", req.Query).Msg("search failed")
		respondError(c, err)

		return
	}

	l.Info().Str("query", resp.Query).Str("mode", resp.Mode).Int("total", resp.Total).Msg("search done")
	c.JSON(http.StatusOK, resp)
}

// Resort 对缓存的搜索结果按新排序键重排.
//
//	@Summary		重排序搜索结果
//	@Description	使用上一次搜索返回的 session_id，不重新查询索引
//	@Tags			搜索
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.ResortRequest	true	"重排序请求"
//	@Success		200		{object}	types.SearchResponse
//	@Failure		404		{object}	map[string]string	"会话过期或不存在"
//	@Router			/api/v1/search/resort [post]
func Resort(c *gin.Context) {
	var req types.ResortRequest
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

	resp, err := svc.Resort(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
