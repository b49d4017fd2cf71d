// Package nlp 封装文本抽取与向量化的外部服务客户端.
//
// 上传工作流用 Processor 从对象存储里的文件抽取正文并生成向量，
// 搜索用 Embedder 为查询串生成向量. 两者都是尽力而为：调用失败时
// 工作流以空文本/空向量降级继续，不阻断上传或搜索本身.
package nlp

import (
	"context"
	"strings"
)

// Embedder 为一段文本生成向量.
type Embedder interface {
	// Embed 生成文本向量，失败返回 error，调用方自行决定降级策略.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ProcessResult 文件内容处理结果.
type ProcessResult struct {
	// Text 抽取出的正文，不可抽取的类型为空串
	Text string
	// Embedding 正文向量，生成失败或跳过时为 nil
	Embedding []float64
}

// Processor 对已上传的文件做内容抽取与向量化.
type Processor interface {
	Process(ctx context.Context, fileURL, fileType string) (*ProcessResult, error)
}

// Extractable 判断 MIME 类型是否值得送去抽取正文.
// 只有 PDF、Office 文档和文本类有可抽取内容，图片/音视频等
// 直接短路，省一次外部调用.
func Extractable(fileType string) bool {
	t := strings.ToLower(fileType)

	switch {
	case strings.Contains(t, "pdf"):
		return true
	case strings.Contains(t, "word"), strings.Contains(t, "document"):
		return true
	case strings.HasPrefix(t, "text/"), strings.Contains(t, "text"):
		return true
	default:
		return false
	}
}
