package nlp

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder 通过 OpenAI 兼容 API 生成向量.
// BaseURL 可指向任何兼容端点（官方、Azure 网关或本地推理服务）.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder 创建 OpenAI embedder，baseURL 为空时使用官方端点.
func NewOpenAIEmbedder(apiKey, baseURL, model string) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Embed 生成单段文本的向量.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}

	if len(resp.Data) != 1 {
		return nil, fmt.Errorf("openai returned %d embeddings, expected 1", len(resp.Data))
	}

	src := resp.Data[0].Embedding
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}

	return out, nil
}
