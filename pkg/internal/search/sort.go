package search

import (
	"sort"
	"strings"
	"time"
)

// SortKey 结果排序键.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDateDesc  SortKey = "date-desc"
	SortDateAsc   SortKey = "date-asc"
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortSizeAsc   SortKey = "size-asc"
	SortSizeDesc  SortKey = "size-desc"
)

// Sort 按给定键返回排序后的新切片，不修改输入，比较相等时保持稳定.
// 未知键回退为相关度降序.
//
// 缺失字段的处理：相似度缺失按 0；上传时间缺失按 "现在"；大小缺失按 0.
func Sort(items []Result, key SortKey) []Result {
	out := make([]Result, len(items))
	copy(out, items)

	now := time.Now()
	less := comparator(key, now)

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

func comparator(key SortKey, now time.Time) func(a, b Result) bool {
	switch key {
	case SortDateDesc:
		return func(a, b Result) bool { return uploadedOr(a, now).After(uploadedOr(b, now)) }
	case SortDateAsc:
		return func(a, b Result) bool { return uploadedOr(a, now).Before(uploadedOr(b, now)) }
	case SortTitleAsc:
		return func(a, b Result) bool { return compareTitles(a, b) < 0 }
	case SortTitleDesc:
		return func(a, b Result) bool { return compareTitles(a, b) > 0 }
	case SortSizeAsc:
		return func(a, b Result) bool { return a.Size < b.Size }
	case SortSizeDesc:
		return func(a, b Result) bool { return a.Size > b.Size }
	case SortRelevance:
		fallthrough
	default:
		return func(a, b Result) bool { return a.Similarity > b.Similarity }
	}
}

func uploadedOr(r Result, fallback time.Time) time.Time {
	if r.UploadedAt != nil {
		return *r.UploadedAt
	}

	return fallback
}

// compareTitles 标题比较，标题为空时回退到文件名，大小写不敏感.
func compareTitles(a, b Result) int {
	return strings.Compare(
		strings.ToLower(titleOrName(a)),
		strings.ToLower(titleOrName(b)),
	)
}

func titleOrName(r Result) string {
	if r.Title != "" {
		return r.Title
	}

	return r.Name
}
