// Package model 定义归档数据的持久化模型.
//
// 一次上传会在三张去范式化的表中各落一条记录：ArchiveItem（主记录）、
// SearchIndexEntry（搜索投影）、CollectionEntry（分类投影），此外所属用户的
// UserProfile 上传列表追加一条摘要. 这组记录由 service 层的同步工作流
// 按固定顺序维护，单条写入之外没有事务保证.
package model

import (
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

// 条目状态.
const (
	StatusActive  = "active"
	StatusTrashed = "trashed"
)

// ItemMetadata 用户可编辑的元数据，内嵌在 ArchiveItem 中.
type ItemMetadata struct {
	Title       string `gorm:"size:512"  json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Tags 以 JSON 字符串存储，便于模糊搜索；未来可替换为 JSONB
	TagsJSON string `gorm:"type:text" json:"tags_json"`
	Category string `gorm:"size:128;index" json:"category"`
}

// Tags 反序列化标签列表，解析失败返回 nil.
func (m *ItemMetadata) Tags() []string {
	if m.TagsJSON == "" {
		return nil
	}

	var tags []string
	if err := sonic.UnmarshalString(m.TagsJSON, &tags); err != nil {
		return nil
	}

	return tags
}

// SetTags 序列化标签列表.
func (m *ItemMetadata) SetTags(tags []string) {
	if len(tags) == 0 {
		m.TagsJSON = ""
		return
	}

	if s, err := sonic.MarshalString(tags); err == nil {
		m.TagsJSON = s
	}
}

// ArchiveItem 归档条目主记录，一个上传文件对应一条.
//
// 不变式：URL 始终是可解析（公开或签名）的存储位置；Path 为空（根目录）
// 或以 "/" 结尾.
type ArchiveItem struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:512;index"     json:"name"`
	Owner string `gorm:"size:255;index"     json:"owner"`
	// Type 是 MIME 类型，分类展示时经 classify 归一化
	Type string `gorm:"size:255;index" json:"type"`
	Size int64  `gorm:"index"          json:"size"`
	URL  string `gorm:"size:2048"      json:"url"`
	// ObjectKey 对象存储键，删除 blob 时从 URL 或此字段推导
	ObjectKey string `gorm:"size:1024;index" json:"object_key"`
	// Path 所在目录，空串表示根目录，否则以 / 结尾，如 "Folder/Sub/"
	Path       string       `gorm:"size:1024;index" json:"path"`
	Status     string       `gorm:"size:32;index"   json:"status"`
	Views      int64        `json:"views"`
	Downloads  int64        `json:"downloads"`
	Metadata   ItemMetadata `gorm:"embedded;embeddedPrefix:meta_" json:"metadata"`
	UploadedAt time.Time    `gorm:"index" json:"uploaded_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// SearchIndexEntry 每个活跃 ArchiveItem 恰有一条的搜索投影.
// ItemID 上的唯一索引在写入时强制一对一关系；编辑/删除仍按
// "所有匹配记录" 处理，防御历史脏数据.
type SearchIndexEntry struct {
	ID     string `gorm:"primaryKey;size:36"        json:"id"`
	ItemID string `gorm:"size:36;uniqueIndex;index" json:"item_id"`
	Owner  string `gorm:"size:255;index"            json:"owner"`

	Title       string `gorm:"size:512"  json:"title"`
	Description string `gorm:"type:text" json:"description"`
	TagsJSON    string `gorm:"type:text" json:"tags_json"`
	Category    string `gorm:"size:128"  json:"category"`

	// Content 提取的文本，抽取失败时为空
	Content string `gorm:"type:text" json:"content"`
	// EmbeddingJSON 向量（JSON 数组），生成失败时为空
	EmbeddingJSON string `gorm:"type:text" json:"embedding_json"`

	Type       string    `gorm:"size:255" json:"type"`
	UploadedAt time.Time `gorm:"index"    json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Tags 反序列化标签列表.
func (e *SearchIndexEntry) Tags() []string {
	m := ItemMetadata{TagsJSON: e.TagsJSON}
	return m.Tags()
}

// Embedding 反序列化向量，空或解析失败返回 nil.
func (e *SearchIndexEntry) Embedding() []float64 {
	if e.EmbeddingJSON == "" {
		return nil
	}

	var v []float64
	if err := sonic.UnmarshalString(e.EmbeddingJSON, &v); err != nil {
		return nil
	}

	return v
}

// SetEmbedding 序列化向量.
func (e *SearchIndexEntry) SetEmbedding(v []float64) {
	if len(v) == 0 {
		e.EmbeddingJSON = ""
		return
	}

	if s, err := sonic.MarshalString(v); err == nil {
		e.EmbeddingJSON = s
	}
}

// CollectionEntry 分类/类型投影，路径形如 /{category}/{type}.
// 上传时创建，条目删除时删除；元数据编辑不更新此表.
type CollectionEntry struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	ItemID  string `gorm:"size:36;index"      json:"item_id"`
	IndexID string `gorm:"size:36"            json:"index_id"`
	Owner   string `gorm:"size:255;index"     json:"owner"`

	Name string `gorm:"size:512"  json:"name"`
	Type string `gorm:"size:255"  json:"type"`
	// Path 派生路径 /{category}/{type}
	Path string `gorm:"size:512;index" json:"path"`

	CreatedAt time.Time `json:"created_at"`
}

// Folder 目录节点.
// 不变式：FullPath = ParentPath + Name + "/".
type Folder struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:255"           json:"name"`
	Owner string `gorm:"size:255;index"     json:"owner"`
	// FullPath 自身路径，以 / 结尾
	FullPath string `gorm:"size:1024;index" json:"full_path"`
	// ParentPath 父目录路径，根目录为空串
	ParentPath string `gorm:"size:1024;index" json:"parent_path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadSummary 用户上传列表中的一条摘要.
type UploadSummary struct {
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UserProfile 用户档案，携带上传列表.
// 列表的增删是读-改-写，多会话并发删除存在丢失更新的竞态，按产品
// 约定属于可接受的尽力而为清理.
type UserProfile struct {
	Owner string `gorm:"primaryKey;size:255" json:"owner"`
	// UploadsJSON []UploadSummary 的 JSON 序列化
	UploadsJSON string    `gorm:"type:text" json:"uploads_json"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Uploads 反序列化上传列表.
func (p *UserProfile) Uploads() []UploadSummary {
	if p.UploadsJSON == "" {
		return nil
	}

	var out []UploadSummary
	if err := sonic.UnmarshalString(p.UploadsJSON, &out); err != nil {
		return nil
	}

	return out
}

// SetUploads 序列化上传列表.
func (p *UserProfile) SetUploads(list []UploadSummary) {
	if len(list) == 0 {
		p.UploadsJSON = ""
		return
	}

	if s, err := sonic.MarshalString(list); err == nil {
		p.UploadsJSON = s
	}
}

// AllModels 返回参与自动迁移的模型列表.
func AllModels() []any {
	return []any{
		&ArchiveItem{},
		&SearchIndexEntry{},
		&CollectionEntry{},
		&Folder{},
		&UserProfile{},
	}
}
