package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 归档条目领域 --------------------------

// ItemRef 标识归档条目及其存储位置.
type ItemRef struct {
	ItemID      string `json:"item_id"`
	ObjectKey   string `json:"object_key,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Name        string `json:"name,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// ItemStoredPayload 条目登记完成.
type ItemStoredPayload struct {
	Item ItemRef `json:"item"`
	// WorkflowID 本次上传工作流的标识，便于关联同一 fan-out 的各条事件.
	WorkflowID string `json:"workflow_id,omitempty"`
	Path       string `json:"path,omitempty"`
}

// ItemUpdatedPayload 条目元数据更新.
type ItemUpdatedPayload struct {
	Item ItemRef `json:"item"`
	// UpdatedIndexEntries 同步更新的索引记录数，正常为 1.
	UpdatedIndexEntries int `json:"updated_index_entries,omitempty"`
}

// ItemDeletedPayload 条目删除，记录各投影的清理结果.
type ItemDeletedPayload struct {
	Item ItemRef `json:"item"`
	// BlobDeleted blob 清理是否成功，失败不阻断记录删除.
	BlobDeleted    bool `json:"blob_deleted"`
	IndexDeleted   int  `json:"index_deleted,omitempty"`
	EntriesDeleted int  `json:"entries_deleted,omitempty"`
}

// ItemMovedPayload 条目目录变更.
type ItemMovedPayload struct {
	Item    ItemRef `json:"item"`
	OldPath string  `json:"old_path"`
	NewPath string  `json:"new_path"`
}

// ItemAccessedPayload 条目被查看或下载.
type ItemAccessedPayload struct {
	Item  ItemRef `json:"item"`
	Count int64   `json:"count,omitempty"` // 累计次数
}

// -------------------------- 搜索索引领域 --------------------------

// IndexRequestedPayload 请求内容抽取与向量化.
type IndexRequestedPayload struct {
	Item    ItemRef `json:"item"`
	FileURL string  `json:"file_url"`
}

// IndexedPayload 索引写入完成.
type IndexedPayload struct {
	Item    ItemRef `json:"item"`
	IndexID string  `json:"index_id"`
	// HasContent 是否抽取到正文
	HasContent bool `json:"has_content"`
	// HasEmbedding 是否生成了向量
	HasEmbedding bool `json:"has_embedding"`
}

// IndexFailedPayload 索引写入失败或降级.
type IndexFailedPayload struct {
	Item  ItemRef `json:"item"`
	Error string  `json:"error"`
}

// -------------------------- 目录领域 --------------------------

// FolderEventPayload 目录创建/重命名/删除.
type FolderEventPayload struct {
	FolderID string `json:"folder_id"`
	Owner    string `json:"owner,omitempty"`
	Path     string `json:"path"`
	OldPath  string `json:"old_path,omitempty"`
	// Cascaded 级联影响的记录数（子目录 + 条目）.
	Cascaded int `json:"cascaded,omitempty"`
}

// -------------------------- 回收站领域 --------------------------

// TrashEventPayload 回收站操作.
type TrashEventPayload struct {
	Owner    string   `json:"owner"`
	ItemIDs  []string `json:"item_ids"`
	Affected int      `json:"affected"`
}
