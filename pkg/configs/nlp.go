package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultNLPTimeout 内容处理与向量化请求的默认超时.
	DefaultNLPTimeout = 30 * time.Second
	// DefaultEmbeddingModel 默认向量模型.
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// NLPConfig 内容抽取与向量化服务配置.
// Provider 决定 embedder 的实现：openai 走 OpenAI 兼容 API，
// http 走自托管的向量化端点；留空则关闭向量搜索，仅保留关键词评分.
type NLPConfig struct {
	Provider string `mapstructure:"provider" rule:"omitempty,oneof=openai http"`

	// ProcessorEndpoint 文本抽取服务地址，留空则上传流程不做内容抽取
	ProcessorEndpoint string `mapstructure:"processor_endpoint"`

	// OpenAI 兼容向量化配置
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`

	// EmbedEndpoint http provider 的向量化端点
	EmbedEndpoint string `mapstructure:"embed_endpoint"`

	Timeout time.Duration `mapstructure:"timeout"`
	// Breaker 是否用熔断器包装向量化调用
	Breaker bool `mapstructure:"breaker"`
}

func (c *NLPConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("nlp.provider", "")
	v.SetDefault("nlp.processor_endpoint", "")
	v.SetDefault("nlp.api_key", "")
	v.SetDefault("nlp.base_url", "")
	v.SetDefault("nlp.model", DefaultEmbeddingModel)
	v.SetDefault("nlp.embed_endpoint", "")
	v.SetDefault("nlp.timeout", DefaultNLPTimeout)
	v.SetDefault("nlp.breaker", true)
}
