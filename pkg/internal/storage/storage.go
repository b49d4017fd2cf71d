// Package storage 处理存储操作，如上传、下载和删除文件到S3，数据库等.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	s3Client := mgr.GetS3Client()
//	store := mgr.GetDocStore()
package storage

import (
	"context"
	"sync"

	"github.com/yemou/archivault/pkg/configs"
	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/nlp"
	dbc "github.com/yemou/archivault/pkg/internal/storage/db"
	kvc "github.com/yemou/archivault/pkg/internal/storage/kv"
	mqc "github.com/yemou/archivault/pkg/internal/storage/mq"
	s3c "github.com/yemou/archivault/pkg/internal/storage/s3"
	nlog "github.com/yemou/archivault/pkg/log"
)

// Manager 聚合所有存储资源与派生的领域依赖.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	KV *kvc.Client
	MQ *mqc.Client

	// Store 文档库抽象，默认基于 DB 构建
	Store docstore.Store

	// Embedder/Processor 可为 nil，表示未配置向量化/内容抽取
	Embedder  nlp.Embedder
	Processor nlp.Processor
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置. 重复调用只返回已初始化实例.
// KV 与 MQ 初始化失败只降级告警：会话缓存与事件发布是可选能力.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e

			return
		}

		m.DB = dbi

		// NewGormStore 内部执行自动迁移
		store, e := docstore.NewGormStore(dbi.GetDB())
		if e != nil {
			err = e

			return
		}

		m.Store = store

		// S3
		s3i, e := s3c.New(ctx)
		if e != nil {
			err = e

			return
		}

		m.S3 = s3i

		// KV：失败不阻断启动
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("kv unavailable, search sessions disabled")
		} else {
			m.KV = kvi
		}

		// MQ：失败不阻断启动
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("mq unavailable, events disabled")
		} else {
			m.MQ = mqi
		}

		m.Embedder, m.Processor = buildNLP(&cfg.NLP, &cfg.CircuitBreaker)

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// buildNLP 根据配置组装向量化与内容抽取客户端.
func buildNLP(cfg *configs.NLPConfig, cbCfg *configs.CircuitBreakerConfig) (nlp.Embedder, nlp.Processor) {
	var embedder nlp.Embedder

	switch cfg.Provider {
	case "openai":
		embedder = nlp.NewOpenAIEmbedder(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "http":
		embedder = nlp.NewHTTPEmbedder(cfg.EmbedEndpoint, cfg.Timeout)
	}

	if embedder != nil && cfg.Breaker {
		embedder = nlp.NewBreakerEmbedder(embedder, "embedder")
	}

	var processor nlp.Processor
	if cfg.ProcessorEndpoint != "" {
		processor = nlp.NewHTTPProcessor(cfg.ProcessorEndpoint, cfg.Timeout)
	}

	return embedder, processor
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端，可能为 nil.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端，可能为 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetDocStore 获取文档库.
func (m *Manager) GetDocStore() docstore.Store {
	return m.Store
}

// GetEmbedder 获取向量化客户端，可能为 nil.
func (m *Manager) GetEmbedder() nlp.Embedder {
	return m.Embedder
}

// GetProcessor 获取内容抽取客户端，可能为 nil.
func (m *Manager) GetProcessor() nlp.Processor {
	return m.Processor
}
