package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	ctxPkg "github.com/yemou/archivault/pkg/context"
	"github.com/yemou/archivault/pkg/internal/model"
	"github.com/yemou/archivault/pkg/internal/storage/db"
	"github.com/yemou/archivault/pkg/internal/types"
)

// StatsService 提供统计计算（基于 DB 的 archive_items 表）。
// 聚合直接走 SQL，不经过 docstore 仓储接口.
type StatsService struct{ dbClient *db.Client }

func NewStatsService(c context.Context) *StatsService {
	return &StatsService{dbClient: ctxPkg.GetDBClient(c)}
}

const (
	hoursPerDay      = 24
	defaultTrendDays = 14
	maxTrendDays     = 60
)

// Summary 统计当前用户活跃/回收总量、大小与访问计数。
func (s *StatsService) Summary(ctx context.Context, owner string) (types.StatsSummary, error) {
	if owner == "" {
		return types.StatsSummary{}, fmt.Errorf("owner required")
	}

	dbx := s.dbClient.GetDB().WithContext(ctx)

	// 一次聚合查询计算活跃/回收站的数量与大小，避免多次往返
	var agg struct {
		ActiveCount  int64 `gorm:"column:active_count"`
		TrashedCount int64 `gorm:"column:trashed_count"`
		TotalSize    int64 `gorm:"column:total_size"`
		TotalViews   int64 `gorm:"column:total_views"`
		TotalDown    int64 `gorm:"column:total_down"`
	}

	// SQLite/MySQL 兼容处理：使用 COALESCE 避免 NULL
	selectExpr :=
		"COALESCE(SUM(CASE WHEN deleted_at IS NULL THEN 1 ELSE 0 END),0) AS active_count, " +
			"COALESCE(SUM(CASE WHEN deleted_at IS NOT NULL THEN 1 ELSE 0 END),0) AS trashed_count, " +
			"COALESCE(SUM(size),0) AS total_size, " +
			"COALESCE(SUM(views),0) AS total_views, " +
			"COALESCE(SUM(downloads),0) AS total_down"

	if err := dbx.Model(&model.ArchiveItem{}).
		Unscoped(). // 包含软删除数据
		Select(selectExpr).
		Where("owner = ?", owner).
		Scan(&agg).Error; err != nil {
		return types.StatsSummary{}, err
	}

	return types.StatsSummary{
		TotalItems:     int(agg.ActiveCount + agg.TrashedCount),
		ActiveItems:    int(agg.ActiveCount),
		TrashedItems:   int(agg.TrashedCount),
		TotalSize:      agg.TotalSize,
		TotalSizeLabel: types.FormatSize(agg.TotalSize),
		TotalViews:     agg.TotalViews,
		TotalDownloads: agg.TotalDown,
	}, nil
}

// ByType 按 MIME 一级类型（如 image、video、application）聚合。
func (s *StatsService) ByType(ctx context.Context, owner string) ([]types.StatsTypeItem, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner required")
	}

	dbx := s.dbClient.GetDB().WithContext(ctx)

	rows := []struct {
		CT  string
		Cnt int64
		Sum int64
	}{}
	// SQLite/MySQL 兼容处理：取 type 的前缀（到 '/' 之前），为空归类 unknown
	err := dbx.Model(&model.ArchiveItem{}).
		Select("CASE WHEN type LIKE '%/%' THEN "+
			"SUBSTR(type,1,INSTR(type,'/')-1) "+
			"ELSE COALESCE(NULLIF(type,''),'unknown') END as ct, "+
			"COUNT(*) as cnt, COALESCE(SUM(size),0) as sum").
		Where("owner = ?", owner).
		Group("ct").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]types.StatsTypeItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.StatsTypeItem{Type: r.CT, Count: int(r.Cnt), Size: r.Sum})
	}

	return out, nil
}

// Trend 按天统计上传数量与大小趋势（最近 N 天）。
func (s *StatsService) Trend(ctx context.Context, owner string, days int) ([]types.StatsTrendPoint, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner required")
	}

	if days <= 0 || days > maxTrendDays {
		days = defaultTrendDays
	}

	dbx := s.dbClient.GetDB().WithContext(ctx)

	start := time.Now().UTC().AddDate(0, 0, -days+1).Truncate(hoursPerDay * time.Hour)
	rows := []struct {
		D   string
		Cnt int64
		Sum int64
	}{}
	// 兼容 SQLite/MySQL：按 DATE(uploaded_at) 分组，结果按天补齐
	if err := dbx.Model(&model.ArchiveItem{}).
		Select("DATE(uploaded_at) as d, COUNT(*) as cnt, COALESCE(SUM(size),0) as sum").
		Where("owner = ? AND uploaded_at >= ?", owner, start).
		Group("DATE(uploaded_at)").
		Order("d").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	data := make(map[string]struct {
		C int64
		S int64
	})
	for _, r := range rows {
		data[r.D] = struct{ C, S int64 }{r.Cnt, r.Sum}
	}

	out := make([]types.StatsTrendPoint, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i).Format("2006-01-02")
		if v, ok := data[d]; ok {
			out = append(out, types.StatsTrendPoint{Date: d, Count: int(v.C), Size: v.S})
		} else {
			out = append(out, types.StatsTrendPoint{Date: d})
		}
	}

	return out, nil
}

// Overview 汇总统计响应：总量 + 按类型 + 趋势.
// 三路聚合互不依赖，并发执行.
func (s *StatsService) Overview(ctx context.Context, owner string) (*types.StatsResponse, error) {
	var (
		summary types.StatsSummary
		byType  []types.StatsTypeItem
		trend   []types.StatsTrendPoint
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary, err = s.Summary(gctx, owner)

		return err
	})

	g.Go(func() error {
		var err error
		byType, err = s.ByType(gctx, owner)

		return err
	})

	g.Go(func() error {
		var err error
		trend, err = s.Trend(gctx, owner, defaultTrendDays)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.StatsResponse{Summary: summary, ByType: byType, Trend: trend}, nil
}
