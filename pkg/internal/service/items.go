package service

import (
	"context"
	"fmt"

	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/queue"
)

// GetItem 读取条目详情并累加查看计数.
// 计数是读-改-写，并发下可能少计，按尽力而为处理.
func (s *ArchiveService) GetItem(ctx context.Context, owner, itemID string) (*types.ItemInfo, error) {
	item, err := s.ownedItem(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}

	item.Views++
	if err := s.store.Items().Update(ctx, itemID, map[string]any{"views": item.Views}); err != nil {
		return nil, fmt.Errorf("record view for %s: %w", item.Name, err)
	}

	s.publish(queue.TopicItemViewed, queue.ItemAccessedPayload{Item: itemRef(item), Count: item.Views})

	info := types.NewItemInfo(item)

	return &info, nil
}

// RecordDownload 累加下载计数并签发读取凭证.
func (s *ArchiveService) RecordDownload(ctx context.Context, owner, itemID string) (*types.ReadTokenResponse, error) {
	item, err := s.ownedItem(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}

	item.Downloads++
	if err := s.store.Items().Update(ctx, itemID, map[string]any{"downloads": item.Downloads}); err != nil {
		return nil, fmt.Errorf("record download for %s: %w", item.Name, err)
	}

	s.publish(queue.TopicItemDownloaded, queue.ItemAccessedPayload{Item: itemRef(item), Count: item.Downloads})

	return s.ReadToken(ctx, &types.ReadTokenRequest{ObjectKey: item.ObjectKey, Attachment: true})
}

// Uploads 返回用户档案中的上传列表.
func (s *ArchiveService) Uploads(ctx context.Context, owner string) ([]types.ItemInfo, error) {
	profile, err := s.store.Profiles().Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	summaries := profile.Uploads()
	out := make([]types.ItemInfo, 0, len(summaries))

	for _, summary := range summaries {
		item, err := s.store.Items().Get(ctx, summary.ItemID)
		if err != nil {
			// 档案清理是尽力而为，列表里可能残留已删条目，跳过
			continue
		}

		out = append(out, types.NewItemInfo(item))
	}

	return out, nil
}
