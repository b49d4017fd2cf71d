// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：av.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：item(归档条目)、index(搜索索引)、folder(目录)、trash(回收站)
// 动作：stored/updated/deleted/moved 等
// 状态：请求(requested)、完成(ed)、失败(failed)

const (
	// 归档条目领域.
	TopicItemStored     = "av.item.stored"     // 条目登记完成（blob 已写入且主记录落库）
	TopicItemUpdated    = "av.item.updated"    // 条目元数据更新
	TopicItemDeleted    = "av.item.deleted"    // 条目删除（含投影与 blob 清理结果）
	TopicItemMoved      = "av.item.moved"      // 条目目录变更
	TopicItemViewed     = "av.item.viewed"     // 条目被查看（用于热点统计）
	TopicItemDownloaded = "av.item.downloaded" // 条目被下载

	// 搜索索引领域.
	TopicIndexRequested = "av.index.requested" // 请求对条目做内容抽取与向量化
	TopicIndexed        = "av.index.indexed"   // 索引写入完成
	TopicIndexDegraded  = "av.index.degraded"  // 索引降级（抽取或向量化失败，仅元数据可搜）
	TopicIndexFailed    = "av.index.failed"    // 索引写入失败

	// 目录领域.
	TopicFolderCreated = "av.folder.created" // 目录创建
	TopicFolderRenamed = "av.folder.renamed" // 目录重命名（含级联更新计数）
	TopicFolderDeleted = "av.folder.deleted" // 目录删除（含级联删除计数）

	// 回收站领域.
	TopicTrashMoved    = "av.trash.moved"    // 条目进入回收站
	TopicTrashRestored = "av.trash.restored" // 条目从回收站恢复
	TopicTrashPurged   = "av.trash.purged"   // 回收站条目彻底清除
)

// 主题分组，用于批量操作或权限控制.
var (
	// 条目相关主题集合.
	ItemTopics = []string{
		TopicItemStored, TopicItemUpdated, TopicItemDeleted,
		TopicItemMoved, TopicItemViewed, TopicItemDownloaded,
	}

	// 索引相关主题集合.
	IndexTopics = []string{
		TopicIndexRequested, TopicIndexed, TopicIndexDegraded, TopicIndexFailed,
	}

	// 目录相关主题集合.
	FolderTopics = []string{
		TopicFolderCreated, TopicFolderRenamed, TopicFolderDeleted,
	}

	// 回收站相关主题集合.
	TrashTopics = []string{
		TopicTrashMoved, TopicTrashRestored, TopicTrashPurged,
	}
)
