// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	ctxPkg "github.com/yemou/archivault/pkg/context"
	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/model"
	"github.com/yemou/archivault/pkg/internal/service"
	"github.com/yemou/archivault/pkg/internal/storage"
	"github.com/yemou/archivault/pkg/log"
	"github.com/yemou/archivault/pkg/scheduler"
)

// trashRetentionDays 回收站保留天数，超过后自动清理.
const trashRetentionDays = 30

// RegisterCronJobs 配置业务定时任务：
//   - 每天 07:00 和 19:00 执行回收站自动清理（默认 30 天前）
//   - 每天 02:10 扫描孤儿搜索索引（主记录已删而索引残留）
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	// 每天 07:00 自动清理回收站
	_ = sched.AddCron(JobTrashAutoCleanMorning, CronTrashAutoCleanMorning, func(ctx context.Context) {
		runTrashAutoClean(ctx, mgr)
	}, baseCtx)

	// 每天 19:00 自动清理回收站
	_ = sched.AddCron(JobTrashAutoCleanEvening, CronTrashAutoCleanEvening, func(ctx context.Context) {
		runTrashAutoClean(ctx, mgr)
	}, baseCtx)

	// 每天 02:10 扫描孤儿索引
	_ = sched.AddCron(JobIndexOrphanSweep, CronIndexOrphanSweep, func(ctx context.Context) {
		runOrphanSweep(ctx, mgr)
	}, baseCtx)

	return nil
}

// runTrashAutoClean 遍历所有用户，执行回收站超期条目的自动清理。
func runTrashAutoClean(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", "trash.auto_clean").Logger()

	users, err := listAllOwners(ctx, mgr)
	if err != nil {
		l.Error().Err(err).Msg("list owners failed")
		return
	}

	before := time.Now().AddDate(0, 0, -trashRetentionDays)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, owner := range users {
		g.Go(func() error {
			svc := service.NewArchiveService(gctx)

			n, e := svc.AutoClean(gctx, owner, before)
			if e != nil {
				l.Error().Err(e).Str("owner", owner).Msg("auto clean failed")
				return nil
			}

			if n > 0 {
				l.Info().Str("owner", owner).Int("affected", n).Time("before", before).Msg("auto cleaned trash")
			}

			return nil
		})
	}

	_ = g.Wait()
}

// runOrphanSweep 报告主记录已不存在的索引记录。
// 只统计不删除：孤儿在搜索时已被跳过，删除留给人工确认。
func runOrphanSweep(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", "index.orphan_sweep").Logger()

	store := mgr.GetDocStore()
	if store == nil {
		l.Error().Msg("doc store not initialized")
		return
	}

	owners, err := listAllOwners(ctx, mgr)
	if err != nil {
		l.Error().Err(err).Msg("list owners failed")
		return
	}

	total := 0

	for _, owner := range owners {
		entries, e := store.Index().All(ctx, owner)
		if e != nil {
			l.Error().Err(e).Str("owner", owner).Msg("load index failed")
			continue
		}

		// 回收站条目的索引不算孤儿，恢复后直接可搜
		trashed, e := store.Items().ListTrashed(ctx, owner)
		if e != nil {
			l.Error().Err(e).Str("owner", owner).Msg("list trashed failed")
			continue
		}

		inTrash := make(map[string]struct{}, len(trashed))
		for i := range trashed {
			inTrash[trashed[i].ID] = struct{}{}
		}

		orphans := 0

		for i := range entries {
			if _, ok := inTrash[entries[i].ItemID]; ok {
				continue
			}

			if _, e := store.Items().Get(ctx, entries[i].ItemID); errors.Is(e, docstore.ErrNotFound) {
				orphans++
			}
		}

		if orphans > 0 {
			l.Warn().Str("owner", owner).Int("orphans", orphans).Msg("orphan index entries found")
			total += orphans
		}
	}

	l.Info().Int("total", total).Msg("orphan sweep done")
}

// listAllOwners 查询 DB 中存在归档条目的所有用户。
func listAllOwners(ctx context.Context, mgr *storage.Manager) ([]string, error) {
	if mgr == nil || mgr.GetDBClient() == nil || mgr.GetDBClient().GetDB() == nil {
		return nil, fmt.Errorf("db not initialized")
	}

	dbx := mgr.GetDBClient().GetDB().WithContext(ctx)

	var owners []string
	if err := dbx.Model(&model.ArchiveItem{}).Unscoped().Distinct().Pluck("owner", &owners).Error; err != nil {
		return nil, err
	}

	return owners, nil
}
