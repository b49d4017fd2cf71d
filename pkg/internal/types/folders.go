package types

import "time"

// FolderInfo 目录展示视图.
type FolderInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FullPath   string    `json:"full_path"`
	ParentPath string    `json:"parent_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateFolderRequest 创建文件夹请求.
type CreateFolderRequest struct {
	Name string `json:"name" rule:"required,max=255"`    // 文件夹名称
	Path string `json:"path,omitempty" rule:"archivedir"` // 父路径，空为根目录
}

// RenameFolderRequest 重命名文件夹请求.
// 级联更新子目录与目录内条目的路径.
type RenameFolderRequest struct {
	NewName string `json:"new_name" rule:"required,max=255"`
}

// RenameFolderResponse 重命名文件夹响应.
type RenameFolderResponse struct {
	Folder       FolderInfo `json:"folder"`
	MovedFolders int        `json:"moved_folders"` // 路径被更新的子目录数
	MovedItems   int        `json:"moved_items"`   // 路径被更新的条目数
}

// DeleteFolderResponse 删除文件夹响应.
type DeleteFolderResponse struct {
	FolderID       string `json:"folder_id"`
	DeletedFolders int    `json:"deleted_folders"`
	TrashedItems   int    `json:"trashed_items"` // 目录内条目进入回收站的数量
}

// BreadcrumbItem 面包屑导航的一级.
type BreadcrumbItem struct {
	Name string `json:"name"`
	Path string `json:"path"` // 该级的完整路径
}

// Breadcrumbs 从路径构造面包屑，根目录返回空列表.
// "Docs/Sub/" -> [{Docs, "Docs/"}, {Sub, "Docs/Sub/"}].
func Breadcrumbs(path string) []BreadcrumbItem {
	if path == "" {
		return nil
	}

	var (
		out  []BreadcrumbItem
		acc  string
		name string
	)

	for _, r := range path {
		if r == '/' {
			acc += name + "/"
			out = append(out, BreadcrumbItem{Name: name, Path: acc})
			name = ""

			continue
		}

		name += string(r)
	}

	return out
}
