package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/yemou/archivault/pkg/internal/classify"
	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/model"
	"github.com/yemou/archivault/pkg/internal/search"
	"github.com/yemou/archivault/pkg/internal/types"
	nlog "github.com/yemou/archivault/pkg/log"
	"github.com/yemou/archivault/pkg/metrics"
)

// ErrEmbeddingUnavailable 向量模式下查询向量化失败，整个搜索中止.
// 候选级的缺失向量回退在打分函数内处理，这里不做逐文档降级.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// Search 执行一次搜索：全量扫描索引、join 主记录、打分、过滤、排序.
// 排序后的结果写入会话缓存，后续换排序键不必重查.
//
// 空查询串在访问存储之前即校验失败.
func (s *ArchiveService) Search(ctx context.Context, owner string, req *types.SearchRequest) (*types.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", ErrValidation)
	}

	entries, err := s.store.Index().All(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("search %q: load index: %w", query, err)
	}

	mode := types.SearchModeKeyword

	// 向量模式：为查询串生成一次向量，失败中止整个搜索
	var queryVector []float64

	useVector := req.Mode == types.SearchModeVector && s.embedder != nil
	if useVector {
		queryVector, err = s.embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w: %v", query, ErrEmbeddingUnavailable, err)
		}

		mode = types.SearchModeVector
	}

	if len(entries) == 0 {
		metrics.SearchCounter.WithLabelValues(string(mode), string(types.SearchStateEmpty)).Inc()

		return &types.SearchResponse{
			Query: query, Mode: mode,
			State:   types.SearchStateEmpty,
			Message: "no documents indexed yet",
		}, nil
	}

	filters := req.Filters()
	now := time.Now()
	results := make([]search.Result, 0, len(entries))

	for i := range entries {
		entry := &entries[i]

		item, err := s.store.Items().Get(ctx, entry.ItemID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				// 孤儿索引：主记录已不在，跳过不影响整批
				nlog.Logger().Debug().Str("item", entry.ItemID).Msg("index entry without item, skipped")
				continue
			}

			return nil, fmt.Errorf("search %q: resolve item %s: %w", query, entry.ItemID, err)
		}

		candidate := buildCandidate(entry, item)
		candidate.Similarity = search.Score(useVector, queryVector, entry.Embedding(),
			query, entry.Content, entry.Title, entry.Tags())

		if candidate.Similarity <= searchThreshold {
			continue
		}

		if !search.Matches(candidate, filters, now) {
			continue
		}

		results = append(results, candidate)
	}

	sorted := search.Sort(results, search.SortKey(req.Sort))

	resp := &types.SearchResponse{
		Query:   query,
		Mode:    mode,
		Results: sorted,
		Total:   len(sorted),
		State:   types.SearchStateSuccess,
	}

	if len(sorted) == 0 {
		resp.State = types.SearchStateEmpty
		resp.Message = "no results above relevance threshold"
		metrics.SearchCounter.WithLabelValues(string(mode), string(resp.State)).Inc()

		return resp, nil
	}

	resp.SessionID = s.saveSession(ctx, owner, sorted)
	metrics.SearchCounter.WithLabelValues(string(mode), string(resp.State)).Inc()

	return resp, nil
}

// Resort 对缓存的搜索结果按新排序键重排，不重查索引.
// 会话过期或缺失时返回 ErrNotFound，调用方应重新发起搜索.
func (s *ArchiveService) Resort(ctx context.Context, owner string, req *types.ResortRequest) (*types.SearchResponse, error) {
	if s.kvClient == nil {
		return nil, docstore.ErrNotFound
	}

	key := sessionKey(owner, req.SessionID)

	raw, err := s.kvClient.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return nil, docstore.ErrNotFound
	}

	var results []search.Result
	if err := sonic.Unmarshal(raw, &results); err != nil {
		return nil, docstore.ErrNotFound
	}

	sorted := search.Sort(results, search.SortKey(req.Sort))

	// 回写排好序的集合，保持会话内 "当前结果" 单一来源
	if data, err := sonic.Marshal(sorted); err == nil {
		_ = s.kvClient.Set(ctx, key, data, sessionTTL)
	}

	return &types.SearchResponse{
		Results:   sorted,
		Total:     len(sorted),
		State:     types.SearchStateSuccess,
		SessionID: req.SessionID,
	}, nil
}

// buildCandidate 将索引记录 join 主记录得到候选.
func buildCandidate(entry *model.SearchIndexEntry, item *model.ArchiveItem) search.Result {
	uploadedAt := entry.UploadedAt
	label := classify.Classify(item.Type, item.Name)

	return search.Result{
		ItemID:     item.ID,
		Name:       item.Name,
		Title:      entry.Title,
		Snippet:    snippet(entry.Content, item.Name),
		Type:       item.Type,
		Category:   entry.Category,
		Icon:       classify.IconFor(label),
		Size:       item.Size,
		URL:        item.URL,
		Tags:       entry.Tags(),
		Path:       item.Path,
		UploadedAt: &uploadedAt,
	}
}

// saveSession 将排序后的结果写入会话缓存，返回会话 ID.
// 缓存不可用时返回空串，调用方将无法使用重排序.
func (s *ArchiveService) saveSession(ctx context.Context, owner string, results []search.Result) string {
	if s.kvClient == nil {
		return ""
	}

	sessionID := uuid.NewString()

	data, err := sonic.Marshal(results)
	if err != nil {
		return ""
	}

	if err := s.kvClient.Set(ctx, sessionKey(owner, sessionID), data, sessionTTL); err != nil {
		nlog.Logger().Debug().Err(err).Msg("search session not cached")
		return ""
	}

	return sessionID
}

// sessionKey 会话缓存键，xxhash 压短 owner 避免超长键.
func sessionKey(owner, sessionID string) string {
	return fmt.Sprintf("av:search:%x:%s", xxhash.Sum64String(owner), sessionID)
}
