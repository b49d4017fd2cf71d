// Package docstore 把外部文档库抽象成按集合划分的类型化仓储接口：
// 单文档读写删、等值查询、全量扫描. 同步工作流与搜索编排只依赖这些
// 接口；gorm 实现是默认后端，内存实现用于测试.
package docstore

import (
	"context"
	"errors"

	"github.com/yemou/archivault/pkg/internal/model"
)

// ErrNotFound 目标文档不存在.
var ErrNotFound = errors.New("docstore: not found")

// ItemStore ArchiveItem 主记录集合.
type ItemStore interface {
	// Put 插入新记录.
	Put(ctx context.Context, item *model.ArchiveItem) error
	// Get 按 ID 取活跃记录，已进回收站或不存在返回 ErrNotFound.
	Get(ctx context.Context, id string) (*model.ArchiveItem, error)
	// Update 按 ID 更新给定字段.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete 硬删除（含已进回收站的记录）.
	Delete(ctx context.Context, id string) error
	// Trash 移入回收站（status=trashed + 软删除）.
	Trash(ctx context.Context, id string) error
	// Restore 从回收站恢复.
	Restore(ctx context.Context, id string) error
	// ListByPath 列出 owner 在指定目录（path 精确相等，非前缀）下的活跃记录.
	ListByPath(ctx context.Context, owner, path string) ([]model.ArchiveItem, error)
	// ListByPathPrefix 列出 owner 路径前缀下的活跃记录，目录级联用.
	ListByPathPrefix(ctx context.Context, owner, prefix string) ([]model.ArchiveItem, error)
	// ListTrashed 列出 owner 回收站中的记录.
	ListTrashed(ctx context.Context, owner string) ([]model.ArchiveItem, error)
}

// IndexStore SearchIndexEntry 搜索投影集合.
type IndexStore interface {
	Put(ctx context.Context, entry *model.SearchIndexEntry) error
	// All 全量扫描 owner 的索引（搜索不假定服务端文本索引）.
	All(ctx context.Context, owner string) ([]model.SearchIndexEntry, error)
	// ByItemID 等值查询回引；防御性返回所有匹配.
	ByItemID(ctx context.Context, itemID string) ([]model.SearchIndexEntry, error)
	// UpdateByItemID 更新所有回引匹配的记录.
	UpdateByItemID(ctx context.Context, itemID string, fields map[string]any) error
	// DeleteByItemID 删除所有回引匹配的记录.
	DeleteByItemID(ctx context.Context, itemID string) error
}

// CollectionStore CollectionEntry 分类投影集合.
type CollectionStore interface {
	Put(ctx context.Context, entry *model.CollectionEntry) error
	ByItemID(ctx context.Context, itemID string) ([]model.CollectionEntry, error)
	DeleteByItemID(ctx context.Context, itemID string) error
}

// FolderStore 目录集合.
type FolderStore interface {
	Put(ctx context.Context, folder *model.Folder) error
	Get(ctx context.Context, id string) (*model.Folder, error)
	// ListByParent 列出 parentPath 精确相等的子目录.
	ListByParent(ctx context.Context, owner, parentPath string) ([]model.Folder, error)
	// ListByPrefix 列出 fullPath 前缀匹配的目录（含自身），级联用.
	ListByPrefix(ctx context.Context, owner, prefix string) ([]model.Folder, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// ProfileStore 用户档案集合.
type ProfileStore interface {
	// Get 不存在时返回零值档案而非错误.
	Get(ctx context.Context, owner string) (*model.UserProfile, error)
	Save(ctx context.Context, profile *model.UserProfile) error
}

// Store 聚合所有集合仓储.
type Store interface {
	Items() ItemStore
	Index() IndexStore
	Collections() CollectionStore
	Folders() FolderStore
	Profiles() ProfileStore
}
