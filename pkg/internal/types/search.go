package types

import "github.com/yemou/archivault/pkg/internal/search"

// 搜索模式.
const (
	SearchModeKeyword = "keyword"
	SearchModeVector  = "vector"
)

// SearchRequest 搜索请求.
// Mode 为空时默认 keyword；vector 模式下服务端为查询串生成向量，
// 向量服务不可用时整体退回关键词评分.
type SearchRequest struct {
	Query string `json:"query" rule:"required"`
	Mode  string `json:"mode,omitempty"` // keyword|vector

	// 过滤条件，全部为且的关系
	Type     string `json:"type,omitempty"`     // 分类标签（pdf、image 等）
	Category string `json:"category,omitempty"` // 用户自定义分类，精确匹配
	Date     string `json:"date,omitempty"`     // day|week|month|year
	Tags     string `json:"tags,omitempty"`     // 逗号分隔，子串匹配

	Sort string `json:"sort,omitempty"` // 排序键，默认按相关度
}

// Filters 转换为过滤器状态.
func (r *SearchRequest) Filters() search.Filters {
	return search.Filters{
		Type:     r.Type,
		Category: r.Category,
		Date:     search.DateBucket(r.Date),
		Tags:     r.Tags,
	}
}

// 搜索结束状态. empty 区分 "没有任何索引记录" 与 "有记录但都低于
// 相关度阈值"，消息文案不同.
const (
	SearchStateSuccess = "success"
	SearchStateEmpty   = "empty"
)

// SearchResponse 搜索响应.
type SearchResponse struct {
	Query     string          `json:"query"`
	Mode      string          `json:"mode"` // 实际采用的模式（vector 降级后为 keyword）
	State     string          `json:"state"`
	Message   string          `json:"message,omitempty"`
	SessionID string          `json:"session_id,omitempty"` // 用于后续不重查的重排序
	Results   []search.Result `json:"results"`
	Total     int             `json:"total"`
}

// ResortRequest 对上一次搜索结果重新排序.
type ResortRequest struct {
	SessionID string `json:"session_id" rule:"required"`
	Sort      string `json:"sort"       rule:"required"`
}
