// Package search 实现归档条目的相关性打分、过滤与排序.
//
// 包内全部为纯函数：打分（关键词重合 / 向量余弦相似度）、多条件过滤的
// 合取组合、可选键的全序排序. 编排（索引扫描、join、渲染）在 service 层.
package search

import (
	"math"
	"strings"
	"time"
)

// Result 搜索管道中的一个候选条目及其得分.
type Result struct {
	ItemID   string     `json:"item_id"`
	Name     string     `json:"name"`
	Title    string     `json:"title"`
	Snippet  string     `json:"snippet"`
	Type     string     `json:"type"`
	Category string     `json:"category"`
	Icon     string     `json:"icon"`
	Size     int64      `json:"size"`
	URL      string     `json:"url"`
	Tags     []string   `json:"tags,omitempty"`
	Path     string     `json:"path"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
	// Similarity 关键词模式下 ∈ [0,1]；向量模式下为真余弦相似度 ∈ [-1,1]，
	// 不做截断——展示层按百分比格式化时需预期负值
	Similarity float64 `json:"similarity"`
}

// 关键词打分的字段权重.
const (
	contentWeight = 0.3
	titleWeight   = 1.0
	tagWeight     = 1.0
)

// KeywordScore 计算查询与文档的关键词重合得分，返回 [0,1].
//
// 查询按空白切分为小写词项；每个词项独立计分：内容命中 +0.3、标题命中
// +1.0、任一标签命中 +1.0（同一词项可同时在多个字段得分）. 词项按
// "是否命中" 计数而非出现次数. 总分除以词项数并截断到 1.0.
// 零词项或文档内容为空时返回 0.
func KeywordScore(query, content, title string, tags []string) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || content == "" {
		return 0
	}

	lowerContent := strings.ToLower(content)
	lowerTitle := strings.ToLower(title)

	lowerTags := make([]string, len(tags))
	for i, tag := range tags {
		lowerTags[i] = strings.ToLower(tag)
	}

	var score float64

	for _, term := range terms {
		if strings.Contains(lowerContent, term) {
			score += contentWeight
		}

		if lowerTitle != "" && strings.Contains(lowerTitle, term) {
			score += titleWeight
		}

		for _, tag := range lowerTags {
			if strings.Contains(tag, term) {
				score += tagWeight
				break
			}
		}
	}

	score /= float64(len(terms))

	return math.Min(score, 1.0)
}

// CosineSimilarity 计算两个向量的余弦相似度.
//
// 结果是真余弦值 ∈ [-1,1]，刻意不截断到 [0,1]——反相关向量会产生负的
// "相关度百分比"，这是保留的既有行为. 任一向量为空、长度不一致或模为
// 零时返回 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64

	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Score 按模式为候选打分. 向量模式下候选缺失向量时回退到关键词打分，
// 而不是计 0 分.
func Score(useVector bool, queryVector []float64, docVector []float64,
	query, content, title string, tags []string,
) float64 {
	if useVector && len(docVector) > 0 {
		return CosineSimilarity(queryVector, docVector)
	}

	return KeywordScore(query, content, title, tags)
}
