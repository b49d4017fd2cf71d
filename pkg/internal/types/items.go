package types

// ItemMetadataInput 用户提交的元数据.
type ItemMetadataInput struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// SaveItemRequest blob 上传完成后注册归档条目.
type SaveItemRequest struct {
	Name      string            `json:"name" rule:"required,max=255"`
	Type      string            `json:"type,omitempty"` // MIME 类型
	Size      int64             `json:"size,omitempty"`
	URL       string            `json:"url" rule:"required"`
	ObjectKey string            `json:"object_key" rule:"required"`
	Path      string            `json:"path,omitempty" rule:"archivedir"` // 目标目录，空为根目录
	Metadata  ItemMetadataInput `json:"metadata"`
}

// SaveItemResponse 注册结果.
// Degraded 表示内容抽取或向量化失败，条目已入库但搜索索引
// 只有元数据没有正文.
type SaveItemResponse struct {
	Item       ItemInfo `json:"item"`
	WorkflowID string   `json:"workflow_id"`
	Degraded   bool     `json:"degraded"`
}

// EditItemMetadataRequest 编辑条目元数据.
type EditItemMetadataRequest struct {
	Name     string            `json:"name,omitempty"` // 可选：重命名
	Metadata ItemMetadataInput `json:"metadata"`
}

// MoveItemRequest 移动条目到新目录.
type MoveItemRequest struct {
	// Path 目标目录，空串为根目录，否则以 / 结尾
	Path string `json:"path" rule:"archivedir"`
}

// ListItemsRequest 列出某目录下的条目.
type ListItemsRequest struct {
	Path string `form:"path" json:"path,omitempty"`
}

// ListItemsResponse 目录列表响应.
type ListItemsResponse struct {
	Path        string           `json:"path"`
	Breadcrumbs []BreadcrumbItem `json:"breadcrumbs"`
	Items       []ItemInfo       `json:"items"`
	Folders     []FolderInfo     `json:"folders"`
	Total       int              `json:"total"`
}

// ItemActionResponse 通用动作响应.
type ItemActionResponse struct {
	ItemID  string `json:"item_id"`
	Message string `json:"message,omitempty"`
}
