package docstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yemou/archivault/pkg/internal/model"
)

// GormStore 基于 gorm 的默认后端.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 后端并自动迁移全部集合.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Items() ItemStore             { return &gormItems{db: s.db} }
func (s *GormStore) Index() IndexStore            { return &gormIndex{db: s.db} }
func (s *GormStore) Collections() CollectionStore { return &gormCollections{db: s.db} }
func (s *GormStore) Folders() FolderStore         { return &gormFolders{db: s.db} }
func (s *GormStore) Profiles() ProfileStore       { return &gormProfiles{db: s.db} }

type gormItems struct{ db *gorm.DB }

func (g *gormItems) Put(ctx context.Context, item *model.ArchiveItem) error {
	return g.db.WithContext(ctx).Create(item).Error
}

func (g *gormItems) Get(ctx context.Context, id string) (*model.ArchiveItem, error) {
	var item model.ArchiveItem

	err := g.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (g *gormItems) Update(ctx context.Context, id string, fields map[string]any) error {
	res := g.db.WithContext(ctx).Model(&model.ArchiveItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (g *gormItems) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Unscoped().Delete(&model.ArchiveItem{}, "id = ?", id).Error
}

func (g *gormItems) Trash(ctx context.Context, id string) error {
	err := g.db.WithContext(ctx).Model(&model.ArchiveItem{}).
		Where("id = ?", id).
		Update("status", model.StatusTrashed).Error
	if err != nil {
		return err
	}

	return g.db.WithContext(ctx).Delete(&model.ArchiveItem{}, "id = ?", id).Error
}

func (g *gormItems) Restore(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Unscoped().Model(&model.ArchiveItem{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": model.StatusActive, "deleted_at": nil})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (g *gormItems) ListByPath(ctx context.Context, owner, path string) ([]model.ArchiveItem, error) {
	var items []model.ArchiveItem

	err := g.db.WithContext(ctx).
		Where("owner = ? AND path = ?", owner, path).
		Order("uploaded_at DESC").
		Find(&items).Error

	return items, err
}

func (g *gormItems) ListByPathPrefix(ctx context.Context, owner, prefix string) ([]model.ArchiveItem, error) {
	var items []model.ArchiveItem

	err := g.db.WithContext(ctx).
		Where("owner = ? AND path LIKE ?", owner, prefix+"%").
		Find(&items).Error

	return items, err
}

func (g *gormItems) ListTrashed(ctx context.Context, owner string) ([]model.ArchiveItem, error) {
	var items []model.ArchiveItem

	err := g.db.WithContext(ctx).Unscoped().
		Where("owner = ? AND status = ?", owner, model.StatusTrashed).
		Order("updated_at DESC").
		Find(&items).Error

	return items, err
}

type gormIndex struct{ db *gorm.DB }

func (g *gormIndex) Put(ctx context.Context, entry *model.SearchIndexEntry) error {
	return g.db.WithContext(ctx).Create(entry).Error
}

func (g *gormIndex) All(ctx context.Context, owner string) ([]model.SearchIndexEntry, error) {
	var entries []model.SearchIndexEntry

	err := g.db.WithContext(ctx).Where("owner = ?", owner).Find(&entries).Error

	return entries, err
}

func (g *gormIndex) ByItemID(ctx context.Context, itemID string) ([]model.SearchIndexEntry, error) {
	var entries []model.SearchIndexEntry

	err := g.db.WithContext(ctx).Where("item_id = ?", itemID).Find(&entries).Error

	return entries, err
}

func (g *gormIndex) UpdateByItemID(ctx context.Context, itemID string, fields map[string]any) error {
	return g.db.WithContext(ctx).Model(&model.SearchIndexEntry{}).
		Where("item_id = ?", itemID).
		Updates(fields).Error
}

func (g *gormIndex) DeleteByItemID(ctx context.Context, itemID string) error {
	return g.db.WithContext(ctx).Delete(&model.SearchIndexEntry{}, "item_id = ?", itemID).Error
}

type gormCollections struct{ db *gorm.DB }

func (g *gormCollections) Put(ctx context.Context, entry *model.CollectionEntry) error {
	return g.db.WithContext(ctx).Create(entry).Error
}

func (g *gormCollections) ByItemID(ctx context.Context, itemID string) ([]model.CollectionEntry, error) {
	var entries []model.CollectionEntry

	err := g.db.WithContext(ctx).Where("item_id = ?", itemID).Find(&entries).Error

	return entries, err
}

func (g *gormCollections) DeleteByItemID(ctx context.Context, itemID string) error {
	return g.db.WithContext(ctx).Delete(&model.CollectionEntry{}, "item_id = ?", itemID).Error
}

type gormFolders struct{ db *gorm.DB }

func (g *gormFolders) Put(ctx context.Context, folder *model.Folder) error {
	return g.db.WithContext(ctx).Create(folder).Error
}

func (g *gormFolders) Get(ctx context.Context, id string) (*model.Folder, error) {
	var folder model.Folder

	err := g.db.WithContext(ctx).First(&folder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &folder, nil
}

func (g *gormFolders) ListByParent(ctx context.Context, owner, parentPath string) ([]model.Folder, error) {
	var folders []model.Folder

	err := g.db.WithContext(ctx).
		Where("owner = ? AND parent_path = ?", owner, parentPath).
		Order("name ASC").
		Find(&folders).Error

	return folders, err
}

func (g *gormFolders) ListByPrefix(ctx context.Context, owner, prefix string) ([]model.Folder, error) {
	var folders []model.Folder

	err := g.db.WithContext(ctx).
		Where("owner = ? AND full_path LIKE ?", owner, prefix+"%").
		Find(&folders).Error

	return folders, err
}

func (g *gormFolders) Update(ctx context.Context, id string, fields map[string]any) error {
	res := g.db.WithContext(ctx).Model(&model.Folder{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (g *gormFolders) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&model.Folder{}, "id = ?", id).Error
}

type gormProfiles struct{ db *gorm.DB }

func (g *gormProfiles) Get(ctx context.Context, owner string) (*model.UserProfile, error) {
	var profile model.UserProfile

	err := g.db.WithContext(ctx).First(&profile, "owner = ?", owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.UserProfile{Owner: owner}, nil
	}

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (g *gormProfiles) Save(ctx context.Context, profile *model.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()

	return g.db.WithContext(ctx).Save(profile).Error
}
