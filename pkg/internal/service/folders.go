package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yemou/archivault/pkg/internal/model"
	"github.com/yemou/archivault/pkg/internal/types"
	"github.com/yemou/archivault/pkg/queue"
)

// CreateFolder 在给定父路径下创建目录.
func (s *ArchiveService) CreateFolder(ctx context.Context, owner string, req *types.CreateFolderRequest) (*types.FolderInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name must not be empty", ErrValidation)
	}

	if strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: folder name must not contain /", ErrValidation)
	}

	if req.Path != "" && !strings.HasSuffix(req.Path, "/") {
		return nil, fmt.Errorf("%w: parent path must be empty or end with /", ErrValidation)
	}

	now := time.Now().UTC()
	folder := &model.Folder{
		ID:         uuid.NewString(),
		Name:       name,
		Owner:      owner,
		FullPath:   req.Path + name + "/",
		ParentPath: req.Path,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Folders().Put(ctx, folder); err != nil {
		return nil, fmt.Errorf("create folder %s: %w", name, err)
	}

	s.publish(queue.TopicFolderCreated, queue.FolderEventPayload{
		FolderID: folder.ID, Owner: owner, Path: folder.FullPath,
	})

	return folderInfo(folder), nil
}

// ListPath 列出路径下的条目与子目录（精确路径，不递归），附带面包屑.
// 每一层导航独立查询.
func (s *ArchiveService) ListPath(ctx context.Context, owner, path string) (*types.ListItemsResponse, error) {
	if path != "" && !strings.HasSuffix(path, "/") {
		return nil, fmt.Errorf("%w: path must be empty or end with /", ErrValidation)
	}

	items, err := s.store.Items().ListByPath(ctx, owner, path)
	if err != nil {
		return nil, fmt.Errorf("list path %q: %w", path, err)
	}

	folders, err := s.store.Folders().ListByParent(ctx, owner, path)
	if err != nil {
		return nil, fmt.Errorf("list path %q: folders: %w", path, err)
	}

	resp := &types.ListItemsResponse{
		Path:        path,
		Breadcrumbs: types.Breadcrumbs(path),
		Items:       make([]types.ItemInfo, 0, len(items)),
		Folders:     make([]types.FolderInfo, 0, len(folders)),
	}

	for i := range items {
		resp.Items = append(resp.Items, types.NewItemInfo(&items[i]))
	}

	for i := range folders {
		resp.Folders = append(resp.Folders, *folderInfo(&folders[i]))
	}

	resp.Total = len(resp.Items) + len(resp.Folders)

	return resp, nil
}

// RenameFolder 重命名目录并级联更新子目录与目录内条目的路径.
// 搜索索引与分类投影不携带目录信息，无需传播.
func (s *ArchiveService) RenameFolder(ctx context.Context, owner, folderID string, req *types.RenameFolderRequest) (*types.RenameFolderResponse, error) {
	newName := strings.TrimSpace(req.NewName)
	if newName == "" {
		return nil, fmt.Errorf("%w: folder name must not be empty", ErrValidation)
	}

	if strings.Contains(newName, "/") {
		return nil, fmt.Errorf("%w: folder name must not contain /", ErrValidation)
	}

	folder, err := s.ownedFolder(ctx, owner, folderID)
	if err != nil {
		return nil, err
	}

	oldPath := folder.FullPath
	newPath := folder.ParentPath + newName + "/"

	if err := s.store.Folders().Update(ctx, folderID, map[string]any{
		"name":      newName,
		"full_path": newPath,
	}); err != nil {
		return nil, fmt.Errorf("rename folder %s: %w", folder.Name, err)
	}

	movedFolders, movedItems, err := s.cascadeMove(ctx, owner, oldPath, newPath)
	if err != nil {
		return nil, fmt.Errorf("rename folder %s: cascade: %w", folder.Name, err)
	}

	s.publish(queue.TopicFolderRenamed, queue.FolderEventPayload{
		FolderID: folderID, Owner: owner, Path: newPath, OldPath: oldPath,
		Cascaded: movedFolders + movedItems,
	})

	updated, err := s.store.Folders().Get(ctx, folderID)
	if err != nil {
		return nil, err
	}

	return &types.RenameFolderResponse{
		Folder:       *folderInfo(updated),
		MovedFolders: movedFolders,
		MovedItems:   movedItems,
	}, nil
}

// DeleteFolder 删除目录，级联删除子目录并把目录内条目移入回收站.
func (s *ArchiveService) DeleteFolder(ctx context.Context, owner, folderID string) (*types.DeleteFolderResponse, error) {
	folder, err := s.ownedFolder(ctx, owner, folderID)
	if err != nil {
		return nil, err
	}

	prefix := folder.FullPath

	descendants, err := s.store.Folders().ListByPrefix(ctx, owner, prefix)
	if err != nil {
		return nil, fmt.Errorf("delete folder %s: %w", folder.Name, err)
	}

	deletedFolders := 0

	for i := range descendants {
		if err := s.store.Folders().Delete(ctx, descendants[i].ID); err != nil {
			return nil, fmt.Errorf("delete folder %s: descendant %s: %w", folder.Name, descendants[i].Name, err)
		}

		deletedFolders++
	}

	items, err := s.store.Items().ListByPathPrefix(ctx, owner, prefix)
	if err != nil {
		return nil, fmt.Errorf("delete folder %s: list items: %w", folder.Name, err)
	}

	trashed := 0

	for i := range items {
		if err := s.store.Items().Trash(ctx, items[i].ID); err != nil {
			return nil, fmt.Errorf("delete folder %s: trash item %s: %w", folder.Name, items[i].Name, err)
		}

		trashed++
	}

	s.publish(queue.TopicFolderDeleted, queue.FolderEventPayload{
		FolderID: folderID, Owner: owner, Path: prefix,
		Cascaded: deletedFolders + trashed,
	})

	return &types.DeleteFolderResponse{
		FolderID:       folderID,
		DeletedFolders: deletedFolders,
		TrashedItems:   trashed,
	}, nil
}

// cascadeMove 将 oldPath 前缀下的子目录与条目重写到 newPath 下.
func (s *ArchiveService) cascadeMove(ctx context.Context, owner, oldPath, newPath string) (folders, items int, err error) {
	subFolders, err := s.store.Folders().ListByPrefix(ctx, owner, oldPath)
	if err != nil {
		return 0, 0, err
	}

	for i := range subFolders {
		f := &subFolders[i]
		if f.FullPath == newPath {
			continue
		}

		fields := map[string]any{
			"full_path":   newPath + strings.TrimPrefix(f.FullPath, oldPath),
			"parent_path": newPath + strings.TrimPrefix(f.ParentPath, oldPath),
		}
		if err := s.store.Folders().Update(ctx, f.ID, fields); err != nil {
			return folders, items, err
		}

		folders++
	}

	contained, err := s.store.Items().ListByPathPrefix(ctx, owner, oldPath)
	if err != nil {
		return folders, 0, err
	}

	for i := range contained {
		item := &contained[i]

		rewritten := newPath + strings.TrimPrefix(item.Path, oldPath)
		if err := s.store.Items().Update(ctx, item.ID, map[string]any{"path": rewritten}); err != nil {
			return folders, items, err
		}

		items++
	}

	return folders, items, nil
}

func (s *ArchiveService) ownedFolder(ctx context.Context, owner, folderID string) (*model.Folder, error) {
	folder, err := s.store.Folders().Get(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if folder.Owner != owner {
		return nil, fmt.Errorf("%w: folder %s does not belong to %s", ErrValidation, folderID, owner)
	}

	return folder, nil
}

func folderInfo(folder *model.Folder) *types.FolderInfo {
	return &types.FolderInfo{
		ID:         folder.ID,
		Name:       folder.Name,
		FullPath:   folder.FullPath,
		ParentPath: folder.ParentPath,
		CreatedAt:  folder.CreatedAt,
	}
}
