package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/yemou/archivault/pkg/configs"
	"github.com/yemou/archivault/pkg/internal/classify"
	"github.com/yemou/archivault/pkg/internal/model"
	"github.com/yemou/archivault/pkg/internal/nlp"
	"github.com/yemou/archivault/pkg/internal/types"
	nlog "github.com/yemou/archivault/pkg/log"
	"github.com/yemou/archivault/pkg/metrics"
	"github.com/yemou/archivault/pkg/queue"
)

// countStep 记录 fan-out 单步的成败计数.
func countStep(step string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	metrics.SyncStepCounter.WithLabelValues(step, status).Inc()
}

// SaveItem 登记一个已写入对象存储的文件，执行去范式化 fan-out：
// 内容抽取（可降级）→ 主记录 → 搜索索引 → 用户档案追加 → 分类投影.
//
// 步骤严格顺序执行且不带事务：某一步失败即中止后续步骤并带文件名
// 上抛，已写入的记录不回滚. 抽取/向量化失败是例外，只降级为空正文
// 空向量，不中止登记.
func (s *ArchiveService) SaveItem(ctx context.Context, owner string, req *types.SaveItemRequest) (*types.SaveItemResponse, error) {
	if strings.TrimSpace(req.Name) == "" || req.URL == "" || req.ObjectKey == "" {
		return nil, fmt.Errorf("%w: name, url and object_key are required", ErrValidation)
	}

	if req.Path != "" && !strings.HasSuffix(req.Path, "/") {
		return nil, fmt.Errorf("%w: path must be empty or end with /", ErrValidation)
	}

	workflowID := ulid.Make().String()
	now := time.Now().UTC()

	// 内容抽取与向量化，失败降级
	var (
		processed = &nlp.ProcessResult{}
		degraded  bool
	)

	if s.processor != nil {
		result, err := s.processor.Process(ctx, req.URL, req.Type)
		countStep("process", err)

		if err != nil {
			degraded = true

			nlog.Logger().Warn().Err(err).Str("file", req.Name).Str("workflow", workflowID).
				Msg("content processing failed, saving without extracted text")
		} else {
			processed = result
		}
	}

	item := &model.ArchiveItem{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Owner:      owner,
		Type:       req.Type,
		Size:       req.Size,
		URL:        req.URL,
		ObjectKey:  req.ObjectKey,
		Path:       req.Path,
		Status:     model.StatusActive,
		UploadedAt: now,
		UpdatedAt:  now,
	}
	item.Metadata.Title = req.Metadata.Title
	item.Metadata.Description = req.Metadata.Description
	item.Metadata.Category = req.Metadata.Category
	item.Metadata.SetTags(req.Metadata.Tags)

	if err := s.store.Items().Put(ctx, item); err != nil {
		countStep("item", err)
		return nil, fmt.Errorf("save item %s: create record: %w", req.Name, err)
	}

	countStep("item", nil)

	entry := &model.SearchIndexEntry{
		ID:          uuid.NewString(),
		ItemID:      item.ID,
		Owner:       owner,
		Title:       req.Metadata.Title,
		Description: req.Metadata.Description,
		TagsJSON:    item.Metadata.TagsJSON,
		Category:    req.Metadata.Category,
		Content:     processed.Text,
		Type:        req.Type,
		UploadedAt:  now,
		CreatedAt:   now,
	}
	entry.SetEmbedding(processed.Embedding)

	if err := s.store.Index().Put(ctx, entry); err != nil {
		countStep("index", err)
		return nil, fmt.Errorf("save item %s: create search index: %w", req.Name, err)
	}

	countStep("index", nil)

	if err := s.appendUpload(ctx, owner, item); err != nil {
		countStep("profile", err)
		return nil, fmt.Errorf("save item %s: update profile: %w", req.Name, err)
	}

	countStep("profile", nil)

	collection := &model.CollectionEntry{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		IndexID:   entry.ID,
		Owner:     owner,
		Name:      req.Name,
		Type:      req.Type,
		Path:      collectionPath(item),
		CreatedAt: now,
	}
	if err := s.store.Collections().Put(ctx, collection); err != nil {
		countStep("collection", err)
		return nil, fmt.Errorf("save item %s: create collection entry: %w", req.Name, err)
	}

	countStep("collection", nil)

	s.publishStored(item, workflowID)

	return &types.SaveItemResponse{
		Item:       types.NewItemInfo(item),
		WorkflowID: workflowID,
		Degraded:   degraded || (processed.Text == "" && nlp.Extractable(req.Type)),
	}, nil
}

// UploadFile 服务端代传：签发凭证、直传字节、登记条目，一气呵成.
// 批量上传时调用方按顺序逐个文件调用，前一个文件的完整 fan-out
// 结束前不开始下一个.
func (s *ArchiveService) UploadFile(ctx context.Context, owner string, req *types.UploadTokenRequest,
	meta types.ItemMetadataInput, body io.Reader, progress ProgressFunc,
) (*types.SaveItemResponse, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	token, err := s.UploadToken(ctx, owner, req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: acquire credential: %w", req.FileName, err)
	}

	contentType := contentTypeFor(req.FileName, req.FileType)

	if err := s.TransferBlob(ctx, token.PutURL, body, req.FileSize, contentType, meta, progress); err != nil {
		return nil, fmt.Errorf("upload %s: %w", req.FileName, err)
	}

	return s.SaveItem(ctx, owner, &types.SaveItemRequest{
		Name:      req.FileName,
		Type:      contentType,
		Size:      req.FileSize,
		URL:       token.BlobURL,
		ObjectKey: token.ObjectKey,
		Path:      req.Folder,
		Metadata:  meta,
	})
}

// EditMetadata 编辑条目元数据并同步搜索索引.
// 索引按条目 ID 查出所有匹配记录一并更新——正常恰有一条，历史脏数据
// 多于一条时防御性全更.
func (s *ArchiveService) EditMetadata(ctx context.Context, owner, itemID string, req *types.EditItemMetadataRequest) (*types.ItemInfo, error) {
	item, err := s.ownedItem(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}

	tags := model.ItemMetadata{}
	tags.SetTags(req.Metadata.Tags)

	fields := map[string]any{
		"meta_title":       req.Metadata.Title,
		"meta_description": req.Metadata.Description,
		"meta_tags_json":   tags.TagsJSON,
		"meta_category":    req.Metadata.Category,
	}
	if req.Name != "" {
		fields["name"] = req.Name
	}

	if err := s.store.Items().Update(ctx, itemID, fields); err != nil {
		return nil, fmt.Errorf("edit item %s: %w", item.Name, err)
	}

	indexFields := map[string]any{
		"title":       req.Metadata.Title,
		"description": req.Metadata.Description,
		"tags_json":   tags.TagsJSON,
		"category":    req.Metadata.Category,
	}
	if err := s.store.Index().UpdateByItemID(ctx, itemID, indexFields); err != nil {
		return nil, fmt.Errorf("edit item %s: sync search index: %w", item.Name, err)
	}

	s.publish(queue.TopicItemUpdated, queue.ItemUpdatedPayload{
		Item: itemRef(item), UpdatedIndexEntries: 1,
	})

	updated, err := s.store.Items().Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	info := types.NewItemInfo(updated)

	return &info, nil
}

// DeleteItem 删除条目及其全部投影.
// blob 清理是尽力而为的第一步，失败不中止记录删除；档案列表的
// 读-改-写清理同样尽力而为.
func (s *ArchiveService) DeleteItem(ctx context.Context, owner, itemID string) error {
	item, err := s.ownedItem(ctx, owner, itemID)
	if err != nil {
		return err
	}

	blobDeleted := s.deleteBlob(ctx, item.ObjectKey, item.URL)

	if err := s.store.Items().Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item %s: %w", item.Name, err)
	}

	if err := s.store.Index().DeleteByItemID(ctx, itemID); err != nil {
		return fmt.Errorf("delete item %s: clear search index: %w", item.Name, err)
	}

	if err := s.store.Collections().DeleteByItemID(ctx, itemID); err != nil {
		return fmt.Errorf("delete item %s: clear collection entries: %w", item.Name, err)
	}

	if err := s.removeUpload(ctx, owner, itemID); err != nil {
		// 档案清理竞态下可能丢失更新，按约定不上抛
		nlog.Logger().Warn().Err(err).Str("item", itemID).Msg("failed to remove upload from profile")
	}

	s.publish(queue.TopicItemDeleted, queue.ItemDeletedPayload{
		Item: itemRef(item), BlobDeleted: blobDeleted, IndexDeleted: 1, EntriesDeleted: 1,
	})

	return nil
}

// MoveItem 移动条目到新目录. 只改主记录的 path，搜索索引与分类投影
// 不携带目录信息，无需传播.
func (s *ArchiveService) MoveItem(ctx context.Context, owner, itemID string, req *types.MoveItemRequest) error {
	if req.Path != "" && !strings.HasSuffix(req.Path, "/") {
		return fmt.Errorf("%w: path must be empty or end with /", ErrValidation)
	}

	item, err := s.ownedItem(ctx, owner, itemID)
	if err != nil {
		return err
	}

	if err := s.store.Items().Update(ctx, itemID, map[string]any{"path": req.Path}); err != nil {
		return fmt.Errorf("move item %s: %w", item.Name, err)
	}

	s.publish(queue.TopicItemMoved, queue.ItemMovedPayload{
		Item: itemRef(item), OldPath: item.Path, NewPath: req.Path,
	})

	return nil
}

// ownedItem 读取条目并校验归属.
func (s *ArchiveService) ownedItem(ctx context.Context, owner, itemID string) (*model.ArchiveItem, error) {
	item, err := s.store.Items().Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.Owner != owner {
		return nil, fmt.Errorf("%w: item %s does not belong to %s", ErrValidation, itemID, owner)
	}

	return item, nil
}

// appendUpload 向用户档案追加一条上传摘要（读-改-写）.
func (s *ArchiveService) appendUpload(ctx context.Context, owner string, item *model.ArchiveItem) error {
	profile, err := s.store.Profiles().Get(ctx, owner)
	if err != nil {
		return err
	}

	uploads := profile.Uploads()
	uploads = append(uploads, model.UploadSummary{
		ItemID:     item.ID,
		Name:       item.Name,
		Size:       item.Size,
		UploadedAt: item.UploadedAt,
	})
	profile.SetUploads(uploads)

	return s.store.Profiles().Save(ctx, profile)
}

// removeUpload 从用户档案过滤掉指定条目（读-改-写）.
func (s *ArchiveService) removeUpload(ctx context.Context, owner, itemID string) error {
	profile, err := s.store.Profiles().Get(ctx, owner)
	if err != nil {
		return err
	}

	uploads := profile.Uploads()
	kept := uploads[:0]

	for _, u := range uploads {
		if u.ItemID != itemID {
			kept = append(kept, u)
		}
	}

	profile.SetUploads(kept)

	return s.store.Profiles().Save(ctx, profile)
}

// collectionPath 派生分类投影路径 /{category}/{type}.
func collectionPath(item *model.ArchiveItem) string {
	category := item.Metadata.Category
	if category == "" {
		category = string(classify.CategoryDefault)
	}

	return fmt.Sprintf("/%s/%s", category, classify.Classify(item.Type, item.Name))
}

func itemRef(item *model.ArchiveItem) queue.ItemRef {
	return queue.ItemRef{
		ItemID:      item.ID,
		ObjectKey:   item.ObjectKey,
		Owner:       item.Owner,
		Name:        item.Name,
		Size:        item.Size,
		ContentType: item.Type,
	}
}

// eventEnabled 按配置决定主题是否发布，未显式配置的主题跟随总开关.
func eventEnabled(topic string) bool {
	cfg := configs.GetConfig()
	if cfg == nil || !cfg.Events.Enabled {
		return false
	}

	ev := cfg.Events.Item

	switch topic {
	case queue.TopicItemStored:
		return ev.Stored
	case queue.TopicItemUpdated:
		return ev.Updated
	case queue.TopicItemDeleted:
		return ev.Deleted
	case queue.TopicItemMoved:
		return ev.Moved
	case queue.TopicItemViewed, queue.TopicItemDownloaded:
		return ev.Accessed
	case queue.TopicFolderCreated, queue.TopicFolderRenamed, queue.TopicFolderDeleted:
		return ev.Folder
	case queue.TopicTrashMoved, queue.TopicTrashRestored, queue.TopicTrashPurged:
		return ev.Trash
	}

	return true
}

// publishStored 发布条目登记事件，失败只记日志.
func (s *ArchiveService) publishStored(item *model.ArchiveItem, workflowID string) {
	if !eventEnabled(queue.TopicItemStored) {
		return
	}

	msg, err := queue.NewWatermillMessage(queue.TopicItemStored, queue.ItemStoredPayload{
		Item: itemRef(item), WorkflowID: workflowID, Path: item.Path,
	}, queue.WithProducer("archivault"))
	if err != nil {
		nlog.Logger().Warn().Err(err).Msg("failed to build item.stored event")
		return
	}

	if err := s.mqClient.Publish(context.Background(), queue.TopicItemStored, msg); err != nil {
		nlog.Logger().Debug().Err(err).Msg("item.stored event not published")
	}
}

// publish 发布任意主题的事件，失败只记日志.
func (s *ArchiveService) publish(topic string, payload any) {
	if !eventEnabled(topic) {
		return
	}

	msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer("archivault"))
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("failed to build event")
		return
	}

	if err := s.mqClient.Publish(context.Background(), topic, msg); err != nil {
		nlog.Logger().Debug().Err(err).Str("topic", topic).Msg("event not published")
	}
}
