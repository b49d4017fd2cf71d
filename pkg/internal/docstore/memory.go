package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/yemou/archivault/pkg/internal/model"
)

// MemoryStore 进程内实现，用于测试与无外部依赖的本地运行.
// 所有集合共享一把锁；语义与 gorm 后端对齐（活跃/回收站可见性、
// 等值查询、关闭式 not found）.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string]*model.ArchiveItem
	index       map[string]*model.SearchIndexEntry
	collections map[string]*model.CollectionEntry
	folders     map[string]*model.Folder
	profiles    map[string]*model.UserProfile
}

// NewMemoryStore 创建空的内存后端.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:       make(map[string]*model.ArchiveItem),
		index:       make(map[string]*model.SearchIndexEntry),
		collections: make(map[string]*model.CollectionEntry),
		folders:     make(map[string]*model.Folder),
		profiles:    make(map[string]*model.UserProfile),
	}
}

func (s *MemoryStore) Items() ItemStore             { return &memItems{s} }
func (s *MemoryStore) Index() IndexStore            { return &memIndex{s} }
func (s *MemoryStore) Collections() CollectionStore { return &memCollections{s} }
func (s *MemoryStore) Folders() FolderStore         { return &memFolders{s} }
func (s *MemoryStore) Profiles() ProfileStore       { return &memProfiles{s} }

type memItems struct{ s *MemoryStore }

func copyItem(item *model.ArchiveItem) *model.ArchiveItem {
	cp := *item
	return &cp
}

func (m *memItems) Put(ctx context.Context, item *model.ArchiveItem) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.items[item.ID] = copyItem(item)

	return nil
}

func (m *memItems) Get(ctx context.Context, id string) (*model.ArchiveItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	item, ok := m.s.items[id]
	if !ok || item.DeletedAt.Valid {
		return nil, ErrNotFound
	}

	return copyItem(item), nil
}

func (m *memItems) Update(ctx context.Context, id string, fields map[string]any) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	item, ok := m.s.items[id]
	if !ok || item.DeletedAt.Valid {
		return ErrNotFound
	}

	applyItemFields(item, fields)
	item.UpdatedAt = time.Now().UTC()

	return nil
}

func (m *memItems) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	delete(m.s.items, id)

	return nil
}

func (m *memItems) Trash(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	item, ok := m.s.items[id]
	if !ok || item.DeletedAt.Valid {
		return ErrNotFound
	}

	item.Status = model.StatusTrashed
	item.DeletedAt = gorm.DeletedAt{Time: time.Now().UTC(), Valid: true}

	return nil
}

func (m *memItems) Restore(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	item, ok := m.s.items[id]
	if !ok {
		return ErrNotFound
	}

	item.Status = model.StatusActive
	item.DeletedAt = gorm.DeletedAt{}

	return nil
}

func (m *memItems) ListByPath(ctx context.Context, owner, path string) ([]model.ArchiveItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.ArchiveItem

	for _, item := range m.s.items {
		if item.Owner == owner && item.Path == path && !item.DeletedAt.Valid {
			out = append(out, *item)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })

	return out, nil
}

func (m *memItems) ListByPathPrefix(ctx context.Context, owner, prefix string) ([]model.ArchiveItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.ArchiveItem

	for _, item := range m.s.items {
		if item.Owner == owner && strings.HasPrefix(item.Path, prefix) && !item.DeletedAt.Valid {
			out = append(out, *item)
		}
	}

	return out, nil
}

func (m *memItems) ListTrashed(ctx context.Context, owner string) ([]model.ArchiveItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.ArchiveItem

	for _, item := range m.s.items {
		if item.Owner == owner && item.Status == model.StatusTrashed {
			out = append(out, *item)
		}
	}

	return out, nil
}

// applyItemFields 按 gorm 列名更新字段，未知字段忽略.
func applyItemFields(item *model.ArchiveItem, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			item.Name, _ = v.(string)
		case "path":
			item.Path, _ = v.(string)
		case "status":
			item.Status, _ = v.(string)
		case "views":
			if n, ok := v.(int64); ok {
				item.Views = n
			}
		case "downloads":
			if n, ok := v.(int64); ok {
				item.Downloads = n
			}
		case "meta_title":
			item.Metadata.Title, _ = v.(string)
		case "meta_description":
			item.Metadata.Description, _ = v.(string)
		case "meta_tags_json":
			item.Metadata.TagsJSON, _ = v.(string)
		case "meta_category":
			item.Metadata.Category, _ = v.(string)
		}
	}
}

type memIndex struct{ s *MemoryStore }

func (m *memIndex) Put(ctx context.Context, entry *model.SearchIndexEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	cp := *entry
	m.s.index[entry.ID] = &cp

	return nil
}

func (m *memIndex) All(ctx context.Context, owner string) ([]model.SearchIndexEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.SearchIndexEntry

	for _, e := range m.s.index {
		if e.Owner == owner {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (m *memIndex) ByItemID(ctx context.Context, itemID string) ([]model.SearchIndexEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.SearchIndexEntry

	for _, e := range m.s.index {
		if e.ItemID == itemID {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (m *memIndex) UpdateByItemID(ctx context.Context, itemID string, fields map[string]any) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, e := range m.s.index {
		if e.ItemID != itemID {
			continue
		}

		for k, v := range fields {
			switch k {
			case "title":
				e.Title, _ = v.(string)
			case "description":
				e.Description, _ = v.(string)
			case "tags_json":
				e.TagsJSON, _ = v.(string)
			case "category":
				e.Category, _ = v.(string)
			case "content":
				e.Content, _ = v.(string)
			case "embedding_json":
				e.EmbeddingJSON, _ = v.(string)
			}
		}

		e.UpdatedAt = time.Now().UTC()
	}

	return nil
}

func (m *memIndex) DeleteByItemID(ctx context.Context, itemID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for id, e := range m.s.index {
		if e.ItemID == itemID {
			delete(m.s.index, id)
		}
	}

	return nil
}

type memCollections struct{ s *MemoryStore }

func (m *memCollections) Put(ctx context.Context, entry *model.CollectionEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	cp := *entry
	m.s.collections[entry.ID] = &cp

	return nil
}

func (m *memCollections) ByItemID(ctx context.Context, itemID string) ([]model.CollectionEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.CollectionEntry

	for _, e := range m.s.collections {
		if e.ItemID == itemID {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (m *memCollections) DeleteByItemID(ctx context.Context, itemID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for id, e := range m.s.collections {
		if e.ItemID == itemID {
			delete(m.s.collections, id)
		}
	}

	return nil
}

type memFolders struct{ s *MemoryStore }

func (m *memFolders) Put(ctx context.Context, folder *model.Folder) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	cp := *folder
	m.s.folders[folder.ID] = &cp

	return nil
}

func (m *memFolders) Get(ctx context.Context, id string) (*model.Folder, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	folder, ok := m.s.folders[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *folder

	return &cp, nil
}

func (m *memFolders) ListByParent(ctx context.Context, owner, parentPath string) ([]model.Folder, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.Folder

	for _, f := range m.s.folders {
		if f.Owner == owner && f.ParentPath == parentPath {
			out = append(out, *f)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (m *memFolders) ListByPrefix(ctx context.Context, owner, prefix string) ([]model.Folder, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	var out []model.Folder

	for _, f := range m.s.folders {
		if f.Owner == owner && strings.HasPrefix(f.FullPath, prefix) {
			out = append(out, *f)
		}
	}

	return out, nil
}

func (m *memFolders) Update(ctx context.Context, id string, fields map[string]any) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	folder, ok := m.s.folders[id]
	if !ok {
		return ErrNotFound
	}

	for k, v := range fields {
		switch k {
		case "name":
			folder.Name, _ = v.(string)
		case "full_path":
			folder.FullPath, _ = v.(string)
		case "parent_path":
			folder.ParentPath, _ = v.(string)
		}
	}

	folder.UpdatedAt = time.Now().UTC()

	return nil
}

func (m *memFolders) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	delete(m.s.folders, id)

	return nil
}

type memProfiles struct{ s *MemoryStore }

func (m *memProfiles) Get(ctx context.Context, owner string) (*model.UserProfile, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	profile, ok := m.s.profiles[owner]
	if !ok {
		return &model.UserProfile{Owner: owner}, nil
	}

	cp := *profile

	return &cp, nil
}

func (m *memProfiles) Save(ctx context.Context, profile *model.UserProfile) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	cp := *profile
	cp.UpdatedAt = time.Now().UTC()
	m.s.profiles[profile.Owner] = &cp

	return nil
}
