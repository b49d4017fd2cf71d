// Package types 定义应用程序中使用的各种数据类型和结构体. 主要为 Request 和 Response 结构体.
package types

import (
	"time"

	"github.com/yemou/archivault/pkg/internal/classify"
	"github.com/yemou/archivault/pkg/internal/model"
)

// ItemInfo 归档条目的展示视图.
type ItemInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Category    string    `json:"category,omitempty"`
	Type        string    `json:"type"` // MIME 类型
	TypeLabel   string    `json:"type_label"`
	Icon        string    `json:"icon"`
	Size        int64     `json:"size"`
	SizeLabel   string    `json:"size_label"`
	URL         string    `json:"url"`
	Path        string    `json:"path"`
	Status      string    `json:"status"`
	Views       int64     `json:"views"`
	Downloads   int64     `json:"downloads"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// NewItemInfo 从持久化模型构造展示视图.
func NewItemInfo(item *model.ArchiveItem) ItemInfo {
	label := classify.Classify(item.Type, item.Name)

	return ItemInfo{
		ID:          item.ID,
		Name:        item.Name,
		Title:       item.Metadata.Title,
		Description: item.Metadata.Description,
		Tags:        item.Metadata.Tags(),
		Category:    item.Metadata.Category,
		Type:        item.Type,
		TypeLabel:   string(label),
		Icon:        classify.IconFor(label),
		Size:        item.Size,
		SizeLabel:   FormatSize(item.Size),
		URL:         item.URL,
		Path:        item.Path,
		Status:      item.Status,
		Views:       item.Views,
		Downloads:   item.Downloads,
		UploadedAt:  item.UploadedAt,
	}
}
