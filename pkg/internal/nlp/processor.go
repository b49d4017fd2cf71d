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

// HTTPProcessor 调用内容处理服务，对存储中的文件抽取正文并向量化.
// 协议：POST {"fileUrl": "...", "fileType": "..."}
//       -> {"extractedText": "...", "embeddings": [0.1, ...]}.
type HTTPProcessor struct {
	endpoint string
	client   *http.Client
}

// NewHTTPProcessor 创建内容处理客户端.
func NewHTTPProcessor(endpoint string, timeout time.Duration) *HTTPProcessor {
	return &HTTPProcessor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type processRequest struct {
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
}

type processResponse struct {
	ExtractedText string    `json:"extractedText"`
	Embeddings    []float64 `json:"embeddings"`
}

// Process 抽取并向量化一个文件.
// 不可抽取的类型不发请求，直接返回空结果；调用方拿到的语义与
// "抽取服务说没内容" 一致.
func (p *HTTPProcessor) Process(ctx context.Context, fileURL, fileType string) (*ProcessResult, error) {
	if !Extractable(fileType) {
		return &ProcessResult{}, nil
	}

	body, err := sonic.Marshal(processRequest{FileURL: fileURL, FileType: fileType})
	if err != nil {
		return nil, fmt.Errorf("marshal process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build process request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content processor unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content processor returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read process response: %w", err)
	}

	var out processResponse
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode process response: %w", err)
	}

	return &ProcessResult{Text: out.ExtractedText, Embedding: out.Embeddings}, nil
}
