package search_test

import (
	"testing"
	"time"

	"github.com/yemou/archivault/pkg/internal/search"
)

func at(t time.Time) *time.Time { return &t }

// TestMatchesNoFilters 无激活条件时任意文档都通过.
func TestMatchesNoFilters(t *testing.T) {
	now := time.Now()

	docs := []search.Result{
		{},
		{Type: "image/png", Category: "photos"},
		{Name: "x.bin", UploadedAt: at(now)},
	}

	for _, doc := range docs {
		if !search.Matches(doc, search.Filters{}, now) {
			t.Errorf("Matches(%+v, empty) = false, want true", doc)
		}
	}
}

// TestMatchesTypeFilter type 条件按 classify 归一化后的分类比较.
func TestMatchesTypeFilter(t *testing.T) {
	now := time.Now()
	doc := search.Result{Type: "image/png", Name: "photo.png"}

	if !search.Matches(doc, search.Filters{Type: "image"}, now) {
		t.Error("image/png should match type filter \"image\"")
	}

	if search.Matches(doc, search.Filters{Type: "video"}, now) {
		t.Error("image/png should not match type filter \"video\"")
	}
}

// TestMatchesCategoryFilter category 精确匹配.
func TestMatchesCategoryFilter(t *testing.T) {
	now := time.Now()
	doc := search.Result{Category: "invoices"}

	if !search.Matches(doc, search.Filters{Category: "invoices"}, now) {
		t.Error("exact category should match")
	}

	if search.Matches(doc, search.Filters{Category: "invoice"}, now) {
		t.Error("category match must be exact, not substring")
	}
}

// TestMatchesWeekBucket 7 天整命中（满足星期约束）包含，8 天排除.
func TestMatchesWeekBucket(t *testing.T) {
	// 固定 now 为周六，7 天前是上周六，weekday 相同满足约束
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) // Saturday

	seven := search.Result{UploadedAt: at(now.AddDate(0, 0, -7))}
	if !search.Matches(seven, search.Filters{Date: search.BucketWeek}, now) {
		t.Error("item exactly 7 days old should be in the week bucket")
	}

	eight := search.Result{UploadedAt: at(now.AddDate(0, 0, -8))}
	if search.Matches(eight, search.Filters{Date: search.BucketWeek}, now) {
		t.Error("item 8 days old should be outside the week bucket")
	}
}

// TestMatchesWeekdayConstraint 7 天窗口内但 weekday 序数大于 now 的被排除.
func TestMatchesWeekdayConstraint(t *testing.T) {
	// now 为周一(1)，前一天是周日(0)：0 <= 1 通过；
	// 两天前是周六(6)：6 > 1 被星期约束排除
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) // Monday

	sunday := search.Result{UploadedAt: at(now.AddDate(0, 0, -1))}
	if !search.Matches(sunday, search.Filters{Date: search.BucketWeek}, now) {
		t.Error("Sunday upload should pass the weekday constraint on a Monday")
	}

	saturday := search.Result{UploadedAt: at(now.AddDate(0, 0, -2))}
	if search.Matches(saturday, search.Filters{Date: search.BucketWeek}, now) {
		t.Error("Saturday upload should fail the weekday constraint on a Monday")
	}
}

// TestMatchesDateBuckets day/month/year 按日历分量比较.
func TestMatchesDateBuckets(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)

	sameDay := search.Result{UploadedAt: at(time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC))}
	if !search.Matches(sameDay, search.Filters{Date: search.BucketDay}, now) {
		t.Error("same calendar day should match the day bucket")
	}

	sameMonth := search.Result{UploadedAt: at(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))}
	if !search.Matches(sameMonth, search.Filters{Date: search.BucketMonth}, now) {
		t.Error("same month should match the month bucket")
	}

	lastYear := search.Result{UploadedAt: at(time.Date(2025, 8, 29, 18, 0, 0, 0, time.UTC))}
	if search.Matches(lastYear, search.Filters{Date: search.BucketYear}, now) {
		t.Error("previous year should not match the year bucket")
	}
}

// TestMatchesDateMissingUploadedAt 日期过滤激活而缺失上传时间时关闭式失败.
func TestMatchesDateMissingUploadedAt(t *testing.T) {
	now := time.Now()
	doc := search.Result{}

	for _, bucket := range []search.DateBucket{search.BucketDay, search.BucketWeek, search.BucketMonth, search.BucketYear} {
		if search.Matches(doc, search.Filters{Date: bucket}, now) {
			t.Errorf("missing uploadedAt should fail closed for bucket %q", bucket)
		}
	}
}

// TestMatchesTagFilter 逗号切分，每个词都要命中某个标签的子串.
func TestMatchesTagFilter(t *testing.T) {
	now := time.Now()
	doc := search.Result{Tags: []string{"finance", "quarterly-report"}}

	if !search.Matches(doc, search.Filters{Tags: "fin"}, now) {
		t.Error("substring tag term should match")
	}

	if !search.Matches(doc, search.Filters{Tags: "fin, report"}, now) {
		t.Error("all comma terms hitting different tags should match")
	}

	if search.Matches(doc, search.Filters{Tags: "fin, missing"}, now) {
		t.Error("one unmatched term should fail the whole tag filter")
	}

	// 文档无标签且过滤非空 ⇒ 失败
	if search.Matches(search.Result{}, search.Filters{Tags: "any"}, now) {
		t.Error("tag filter on a tag-less document should fail")
	}
}
