package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/types"
	nlog "github.com/yemou/archivault/pkg/log"
	"github.com/yemou/archivault/pkg/queue"
)

// TrashItem 将条目移入回收站（软删除）. 投影与 blob 保持不动，
// 恢复时直接可用.
func (s *ArchiveService) TrashItem(ctx context.Context, owner, itemID string) error {
	if _, err := s.ownedItem(ctx, owner, itemID); err != nil {
		return err
	}

	if err := s.store.Items().Trash(ctx, itemID); err != nil {
		return fmt.Errorf("trash item %s: %w", itemID, err)
	}

	s.publish(queue.TopicTrashMoved, queue.TrashEventPayload{
		Owner: owner, ItemIDs: []string{itemID}, Affected: 1,
	})

	return nil
}

// ListTrash 列出回收站中的条目.
func (s *ArchiveService) ListTrash(ctx context.Context, owner string) (*types.TrashListResponse, error) {
	items, err := s.store.Items().ListTrashed(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}

	out := make([]types.ItemInfo, 0, len(items))
	for i := range items {
		out = append(out, types.NewItemInfo(&items[i]))
	}

	return &types.TrashListResponse{Items: out, Total: len(out)}, nil
}

// RestoreItems 批量恢复回收站条目. 缺失的条目跳过，不中断整批.
func (s *ArchiveService) RestoreItems(ctx context.Context, owner string, itemIDs []string) (int, error) {
	if len(itemIDs) == 0 {
		return 0, fmt.Errorf("%w: item_ids must not be empty", ErrValidation)
	}

	restored := 0

	for _, id := range itemIDs {
		if err := s.store.Items().Restore(ctx, id); err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				continue
			}

			return restored, fmt.Errorf("restore item %s: %w", id, err)
		}

		restored++
	}

	s.publish(queue.TopicTrashRestored, queue.TrashEventPayload{
		Owner: owner, ItemIDs: itemIDs, Affected: restored,
	})

	return restored, nil
}

// PurgeItems 批量彻底清除回收站条目：blob 尽力删除，随后清掉
// 主记录与全部投影.
func (s *ArchiveService) PurgeItems(ctx context.Context, owner string, itemIDs []string) (int, error) {
	if len(itemIDs) == 0 {
		return 0, fmt.Errorf("%w: item_ids must not be empty", ErrValidation)
	}

	trashed, err := s.store.Items().ListTrashed(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("purge: %w", err)
	}

	inTrash := make(map[string]int, len(trashed))
	for i := range trashed {
		inTrash[trashed[i].ID] = i
	}

	purged := 0

	for _, id := range itemIDs {
		idx, ok := inTrash[id]
		if !ok {
			continue
		}

		item := &trashed[idx]

		s.deleteBlob(ctx, item.ObjectKey, item.URL)

		if err := s.store.Items().Delete(ctx, id); err != nil {
			return purged, fmt.Errorf("purge item %s: %w", id, err)
		}

		if err := s.store.Index().DeleteByItemID(ctx, id); err != nil {
			return purged, fmt.Errorf("purge item %s: clear search index: %w", id, err)
		}

		if err := s.store.Collections().DeleteByItemID(ctx, id); err != nil {
			return purged, fmt.Errorf("purge item %s: clear collection entries: %w", id, err)
		}

		if err := s.removeUpload(ctx, owner, id); err != nil {
			nlog.Logger().Warn().Err(err).Str("item", id).Msg("failed to remove upload from profile")
		}

		purged++
	}

	s.publish(queue.TopicTrashPurged, queue.TrashEventPayload{
		Owner: owner, ItemIDs: itemIDs, Affected: purged,
	})

	return purged, nil
}

// AutoClean 清除删除时间早于 before 的回收站条目.
func (s *ArchiveService) AutoClean(ctx context.Context, owner string, before time.Time) (int, error) {
	if before.IsZero() {
		return 0, fmt.Errorf("%w: before required", ErrValidation)
	}

	trashed, err := s.store.Items().ListTrashed(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("auto clean: %w", err)
	}

	expired := make([]string, 0, len(trashed))

	for i := range trashed {
		if trashed[i].DeletedAt.Valid && trashed[i].DeletedAt.Time.Before(before) {
			expired = append(expired, trashed[i].ID)
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	return s.PurgeItems(ctx, owner, expired)
}
