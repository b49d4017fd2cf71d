package search_test

import (
	"math"
	"testing"

	"github.com/yemou/archivault/pkg/internal/search"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

// TestKeywordScoreContentHit 单词项仅命中内容：0.3 / 1 = 0.3.
// 词项按 "是否命中" 计分，内容中出现多次不重复累加.
func TestKeywordScoreContentHit(t *testing.T) {
	got := search.KeywordScore("test", "test doc", "", nil)
	if !almostEqual(got, 0.3) {
		t.Errorf("KeywordScore = %v, want 0.3", got)
	}

	// 两次出现仍只计一次
	repeated := search.KeywordScore("test", "test test document", "", nil)
	if !almostEqual(repeated, 0.3) {
		t.Errorf("per-occurrence counting detected: got %v, want 0.3", repeated)
	}
}

// TestKeywordScoreFieldsStack 同一词项可同时在内容/标题/标签得分.
func TestKeywordScoreFieldsStack(t *testing.T) {
	// 0.3 + 1.0 + 1.0 = 2.3，归一化后截断到 1.0
	got := search.KeywordScore("report", "annual report", "Report 2024", []string{"reports"})
	if !almostEqual(got, 1.0) {
		t.Errorf("KeywordScore = %v, want clamp to 1.0", got)
	}
}

// TestKeywordScoreBounds 任意输入下 0 ≤ score ≤ 1.
func TestKeywordScoreBounds(t *testing.T) {
	cases := []struct {
		query, content, title string
		tags                  []string
	}{
		{"", "content", "title", nil},
		{"a b c", "", "title", nil},
		{"x y z", "xyz xyz", "xyz", []string{"xyz", "zyx"}},
		{"one two three four", "one", "", nil},
		{"ONE", "one", "One", []string{"ONE"}},
	}

	for _, c := range cases {
		got := search.KeywordScore(c.query, c.content, c.title, c.tags)
		if got < 0 || got > 1 {
			t.Errorf("KeywordScore(%q, %q, ...) = %v out of [0,1]", c.query, c.content, got)
		}
	}
}

// TestKeywordScoreMonotonic 命中词项越多得分不降.
func TestKeywordScoreMonotonic(t *testing.T) {
	content := "alpha beta gamma"

	one := search.KeywordScore("alpha zzz", content, "", nil)
	two := search.KeywordScore("alpha beta", content, "", nil)

	if two < one {
		t.Errorf("score decreased with more matched terms: %v < %v", two, one)
	}
}

// TestKeywordScoreEmpty 零词项或空内容返回 0.
func TestKeywordScoreEmpty(t *testing.T) {
	if got := search.KeywordScore("   ", "content", "title", nil); got != 0 {
		t.Errorf("blank query: got %v, want 0", got)
	}

	if got := search.KeywordScore("query", "", "title", nil); got != 0 {
		t.Errorf("empty content: got %v, want 0", got)
	}
}

// TestCosineSimilarity 对称性、自相似为 1、零向量为 0.
func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	if !almostEqual(search.CosineSimilarity(a, b), search.CosineSimilarity(b, a)) {
		t.Error("cosine similarity is not symmetric")
	}

	if got := search.CosineSimilarity(a, a); !almostEqual(got, 1.0) {
		t.Errorf("self similarity = %v, want 1", got)
	}

	if got := search.CosineSimilarity(a, []float64{0, 0, 0}); got != 0 {
		t.Errorf("zero vector similarity = %v, want 0", got)
	}

	if got := search.CosineSimilarity(a, []float64{1, 2}); got != 0 {
		t.Errorf("mismatched length similarity = %v, want 0", got)
	}

	if got := search.CosineSimilarity(nil, a); got != 0 {
		t.Errorf("empty vector similarity = %v, want 0", got)
	}

	// 反相关向量产生负相似度，不截断
	if got := search.CosineSimilarity(a, []float64{-1, -2, -3}); !almostEqual(got, -1.0) {
		t.Errorf("anti-correlated similarity = %v, want -1", got)
	}
}

// TestScoreVectorFallback 向量模式下候选缺失向量时回退到关键词打分.
func TestScoreVectorFallback(t *testing.T) {
	got := search.Score(true, []float64{1, 0}, nil, "test", "test doc", "", nil)
	if !almostEqual(got, 0.3) {
		t.Errorf("vector-missing fallback = %v, want keyword score 0.3", got)
	}

	withVector := search.Score(true, []float64{1, 0}, []float64{1, 0}, "test", "test doc", "", nil)
	if !almostEqual(withVector, 1.0) {
		t.Errorf("vector mode = %v, want 1.0", withVector)
	}
}
