package search_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/yemou/archivault/pkg/internal/search"
)

func sample() []search.Result {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	return []search.Result{
		{ItemID: "a", Title: "Beta", Size: 30, Similarity: 0.2, UploadedAt: &t2},
		{ItemID: "b", Title: "alpha", Size: 10, Similarity: 0.9, UploadedAt: &t3},
		{ItemID: "c", Name: "Gamma.txt", Size: 20, Similarity: 0.5, UploadedAt: &t1},
	}
}

func ids(rs []search.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ItemID
	}

	return out
}

// TestSortKeys 每个排序键的全序.
func TestSortKeys(t *testing.T) {
	cases := []struct {
		key  search.SortKey
		want []string
	}{
		{search.SortRelevance, []string{"b", "c", "a"}},
		{search.SortDateDesc, []string{"b", "a", "c"}},
		{search.SortDateAsc, []string{"c", "a", "b"}},
		{search.SortTitleAsc, []string{"b", "a", "c"}},  // alpha, Beta, Gamma.txt（大小写不敏感，空标题回退文件名）
		{search.SortTitleDesc, []string{"c", "a", "b"}},
		{search.SortSizeAsc, []string{"b", "c", "a"}},
		{search.SortSizeDesc, []string{"a", "c", "b"}},
		{search.SortKey("bogus"), []string{"b", "c", "a"}}, // 未知键回退相关度降序
	}

	for _, c := range cases {
		got := ids(search.Sort(sample(), c.key))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Sort(%q) order = %v, want %v", c.key, got, c.want)
		}
	}
}

// TestSortNonMutating 排序不修改输入切片.
func TestSortNonMutating(t *testing.T) {
	in := sample()
	before := ids(in)

	_ = search.Sort(in, search.SortSizeAsc)

	if !reflect.DeepEqual(ids(in), before) {
		t.Error("Sort mutated its input")
	}
}

// TestSortIdempotent sort(sort(xs,k),k) == sort(xs,k) 对每个键成立.
func TestSortIdempotent(t *testing.T) {
	keys := []search.SortKey{
		search.SortRelevance, search.SortDateDesc, search.SortDateAsc,
		search.SortTitleAsc, search.SortTitleDesc,
		search.SortSizeAsc, search.SortSizeDesc,
	}

	for _, k := range keys {
		once := search.Sort(sample(), k)
		twice := search.Sort(once, k)

		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("Sort(%q) is not idempotent: %v vs %v", k, ids(once), ids(twice))
		}
	}
}

// TestSortMissingFields 相似度/时间/大小缺失时的约定处理.
func TestSortMissingFields(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	in := []search.Result{
		{ItemID: "old", UploadedAt: &old},
		{ItemID: "missing"}, // 缺失时间按 "现在"
	}

	got := ids(search.Sort(in, search.SortDateDesc))
	if got[0] != "missing" {
		t.Errorf("missing uploadedAt should sort as now (first on date-desc), got %v", got)
	}

	// 缺失相似度按 0
	rel := search.Sort([]search.Result{{ItemID: "z"}, {ItemID: "s", Similarity: 0.1}}, search.SortRelevance)
	if rel[0].ItemID != "s" {
		t.Errorf("missing similarity should sort as 0, got %v", ids(rel))
	}
}
