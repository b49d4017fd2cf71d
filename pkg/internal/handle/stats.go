package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/log"
)

// StatsOverview 统计总览：汇总、类型分布与上传趋势.
//
//	@Summary	统计总览
//	@Tags		统计
//	@Produce	json
//	@Success	200	{object}	types.StatsResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/stats [get]
func StatsOverview(c *gin.Context) {
	l := log.Logger()

	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewStatsService(c.Request.Context())

	resp, err := svc.Overview(c.Request.Context(), user)
	if err != nil {
		l.Error().Err(err).Msg("stats overview failed")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// StatsTrend 上传趋势（按天）.
//
//	@Summary	上传趋势
//	@Tags		统计
//	@Produce	json
//	@Param		days	query		int	false	"统计天数(默认14, 最大60)"
//	@Success	200		{object}	map[string]any
//	@Failure	500		{object}	map[string]string
//	@Router		/api/v1/stats/trend [get]
func StatsTrend(c *gin.Context) {
	user, err := checkUser(c)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	days := 0
	if d := c.Query("days"); d != "" {
		days, _ = strconv.Atoi(d)
	}

	svc := service.NewStatsService(c.Request.Context())

	trend, err := svc.Trend(c.Request.Context(), user, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
