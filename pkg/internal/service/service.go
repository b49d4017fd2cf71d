// Package service 实现归档业务逻辑：上传同步工作流、搜索编排、
// 目录导航、回收站与统计.
package service

import (
	"context"

	ctxPkg "github.com/yemou/archivault/pkg/context"
	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/nlp"
	"github.com/yemou/archivault/pkg/internal/storage/kv"
	"github.com/yemou/archivault/pkg/internal/storage/mq"
	"github.com/yemou/archivault/pkg/internal/storage/s3"
)

// ArchiveService 聚合一次请求所需的全部依赖.
// 存储客户端来自请求上下文，NLP 客户端来自存储管理器的共享实例.
type ArchiveService struct {
	store     docstore.Store
	s3Client  *s3.Client
	kvClient  *kv.Client
	mqClient  *mq.Client
	embedder  nlp.Embedder
	processor nlp.Processor
}

// NewArchiveService 从请求上下文构造服务.
func NewArchiveService(c context.Context) *ArchiveService {
	mgr := ctxPkg.GetManager(c)
	if mgr == nil {
		return &ArchiveService{}
	}

	return &ArchiveService{
		store:     mgr.GetDocStore(),
		s3Client:  mgr.GetS3Client(),
		kvClient:  mgr.GetKVClient(),
		mqClient:  mgr.GetMQClient(),
		embedder:  mgr.GetEmbedder(),
		processor: mgr.GetProcessor(),
	}
}
