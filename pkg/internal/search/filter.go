package search

import (
	"math"
	"strings"
	"time"

	"github.com/yemou/archivault/pkg/internal/classify"
)

// DateBucket 日期过滤档位.
type DateBucket string

const (
	BucketDay   DateBucket = "day"
	BucketWeek  DateBucket = "week"
	BucketMonth DateBucket = "month"
	BucketYear  DateBucket = "year"
)

// Filters 一次搜索/列表的过滤条件，空字段表示跳过对应谓词.
type Filters struct {
	// Type 按 classify 归一化后的分类过滤
	Type string `json:"type,omitempty"`
	// Category 按元数据分类标签精确匹配
	Category string `json:"category,omitempty"`
	// Date 相对 "现在" 的日期档位：day/week/month/year
	Date DateBucket `json:"date,omitempty"`
	// Tags 逗号分隔的标签词；每个词都必须是文档某个标签的子串
	Tags string `json:"tags,omitempty"`
}

// Empty 是否没有任何激活的过滤条件.
func (f Filters) Empty() bool {
	return f.Type == "" && f.Category == "" && f.Date == "" && f.Tags == ""
}

// Matches 判断候选是否通过全部激活的过滤条件（AND 合取）.
// 没有激活条件时恒为 true. 日期过滤激活而候选缺失上传时间时
// 关闭式失败（排除该候选），不会报错.
func Matches(doc Result, f Filters, now time.Time) bool {
	if f.Type != "" {
		if classify.Classify(doc.Type, doc.Name) != classify.Category(f.Type) {
			return false
		}
	}

	if f.Category != "" && doc.Category != f.Category {
		return false
	}

	if f.Date != "" {
		if doc.UploadedAt == nil {
			return false
		}

		if !inDateBucket(*doc.UploadedAt, f.Date, now) {
			return false
		}
	}

	if f.Tags != "" {
		if !matchTags(doc.Tags, f.Tags) {
			return false
		}
	}

	return true
}

// inDateBucket 判断时间是否落在相对 now 的档位内.
//
// week 刻意保留既有语义：不是 ISO 周对齐，而是滑动的 ≤7 天窗口，外加
// 星期序数约束 weekday(t) <= weekday(now). 该规则已知含混，未经需求
// 确认不做 "修正".
func inDateBucket(t time.Time, bucket DateBucket, now time.Time) bool {
	switch bucket {
	case BucketDay:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()

		return y1 == y2 && m1 == m2 && d1 == d2
	case BucketWeek:
		days := math.Abs(now.Sub(t).Hours() / 24)

		return days <= 7 && int(t.Weekday()) <= int(now.Weekday())
	case BucketMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case BucketYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}

// matchTags 过滤值逗号切分，每个词都要是某个文档标签的子串（大小写不敏感）.
// 文档没有标签而过滤值非空时判定失败.
func matchTags(docTags []string, filter string) bool {
	if len(docTags) == 0 {
		return false
	}

	lowerTags := make([]string, len(docTags))
	for i, tag := range docTags {
		lowerTags[i] = strings.ToLower(tag)
	}

	for _, term := range strings.Split(filter, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}

		found := false

		for _, tag := range lowerTags {
			if strings.Contains(tag, term) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
