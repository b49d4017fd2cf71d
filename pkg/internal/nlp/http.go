package nlp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// HTTPEmbedder 调用自托管向量化服务.
// 协议：POST {"text": "..."} -> {"embeddings": [0.1, ...]}.
type HTTPEmbedder struct {
	endpoint string
	client   *http.Client
}

// NewHTTPEmbedder 创建指向给定端点的 embedder.
func NewHTTPEmbedder(endpoint string, timeout time.Duration) *HTTPEmbedder {
	return &HTTPEmbedder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embeddings []float64 `json:"embeddings"`
}

// Embed 生成单段文本的向量.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := sonic.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embed response: %w", err)
	}

	var out embedResponse
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}

	return out.Embeddings, nil
}
