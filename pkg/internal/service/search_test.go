package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/nlp"
	"github.com/yemou/archivault/pkg/internal/search"
	"github.com/yemou/archivault/pkg/internal/storage/kv"
	"github.com/yemou/archivault/pkg/internal/types"
)

// spyStore 记录索引全量扫描次数.
type spyStore struct {
	docstore.Store
	indexCalls int
}

func (s *spyStore) Index() docstore.IndexStore {
	s.indexCalls++
	return s.Store.Index()
}

// stubEmbedder 固定返回向量或错误.
type stubEmbedder struct {
	vector []float64
	err    error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return e.vector, e.err
}

func seedDocuments(t *testing.T, svc *ArchiveService) map[string]string {
	t.Helper()

	ids := make(map[string]string)

	docs := []struct {
		name    string
		title   string
		content string
		tags    []string
		vector  []float64
	}{
		{"report.pdf", "Quarterly Report", "revenue grew in the third quarter", []string{"finance"}, []float64{1, 0}},
		{"notes.txt", "Meeting Notes", "action items from the planning meeting", []string{"planning"}, []float64{0, 1}},
		{"photo.png", "Vacation", "", nil, nil},
	}

	for _, d := range docs {
		svc.processor = &stubProcessor{result: &nlp.ProcessResult{Text: d.content, Embedding: d.vector}}

		req := saveReq(d.name)
		req.Metadata.Title = d.title
		req.Metadata.Tags = d.tags

		resp, err := svc.SaveItem(context.Background(), "alice", req)
		if err != nil {
			t.Fatalf("seed %s: %v", d.name, err)
		}

		ids[d.name] = resp.Item.ID
	}

	return ids
}

func TestSearchEmptyQueryBeforeStore(t *testing.T) {
	spy := &spyStore{Store: docstore.NewMemoryStore()}
	svc := newTestService(spy)

	_, err := svc.Search(context.Background(), "alice", &types.SearchRequest{Query: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	if spy.indexCalls != 0 {
		t.Errorf("index accessed %d times on empty query", spy.indexCalls)
	}
}

func TestSearchNoDocuments(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())

	resp, err := svc.Search(context.Background(), "alice", &types.SearchRequest{Query: "report"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.State != types.SearchStateEmpty || resp.Message != "no documents indexed yet" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSearchKeywordFlow(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	ids := seedDocuments(t, svc)

	resp, err := svc.Search(context.Background(), "alice", &types.SearchRequest{Query: "quarterly"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.State != types.SearchStateSuccess || resp.Mode != types.SearchModeKeyword {
		t.Fatalf("state = %q mode = %q", resp.State, resp.Mode)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1: %+v", len(resp.Results), resp.Results)
	}

	got := resp.Results[0]
	if got.ItemID != ids["report.pdf"] {
		t.Errorf("item = %s, want report.pdf", got.ItemID)
	}
	// 标题命中权重高于正文命中
	if got.Similarity < 1.0 {
		t.Errorf("similarity = %v, want clamped 1.0", got.Similarity)
	}
	if got.Snippet != "revenue grew in the third quarter" {
		t.Errorf("snippet = %q", got.Snippet)
	}
}

func TestSearchNoResultsAboveThreshold(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	seedDocuments(t, svc)

	resp, err := svc.Search(context.Background(), "alice", &types.SearchRequest{Query: "nonexistent"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.State != types.SearchStateEmpty || resp.Message != "no results above relevance threshold" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.SessionID != "" {
		t.Error("empty result set should not open a session")
	}
}

func TestSearchVectorMode(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	ids := seedDocuments(t, svc)
	svc.embedder = &stubEmbedder{vector: []float64{1, 0}}

	resp, err := svc.Search(context.Background(), "alice", &types.SearchRequest{
		Query: "third quarter revenue",
		Mode:  types.SearchModeVector,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.Mode != types.SearchModeVector {
		t.Fatalf("mode = %q", resp.Mode)
	}
	if len(resp.Results) == 0 || resp.Results[0].ItemID != ids["report.pdf"] {
		t.Fatalf("results = %+v", resp.Results)
	}
	if resp.Results[0].Similarity < 0.99 {
		t.Errorf("similarity = %v, want ~1 for aligned vectors", resp.Results[0].Similarity)
	}
}

func TestSearchVectorModeWithoutEmbedder(t *testing.T) {
	// 未配置向量服务时回退关键词打分，而不是报错
	svc := newTestService(docstore.NewMemoryStore())
	seedDocuments(t, svc)

	resp, err := svc.Search(context.Background(), "alice", &types.SearchRequest{
		Query: "quarterly",
		Mode:  types.SearchModeVector,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.Mode != types.SearchModeKeyword {
		t.Errorf("mode = %q, want keyword fallback", resp.Mode)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d", len(resp.Results))
	}
}

func TestSearchEmbedderFailureAborts(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	seedDocuments(t, svc)
	svc.embedder = &stubEmbedder{err: errors.New("upstream 503")}

	_, err := svc.Search(context.Background(), "alice", &types.SearchRequest{
		Query: "quarterly",
		Mode:  types.SearchModeVector,
	})
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Errorf("err = %v, want ErrEmbeddingUnavailable", err)
	}
}

func TestSearchSkipsOrphanIndexEntries(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ids := seedDocuments(t, svc)

	// 制造孤儿：直接删主记录，索引保留
	if err := store.Items().Delete(ctx, ids["report.pdf"]); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	resp, err := svc.Search(ctx, "alice", &types.SearchRequest{Query: "quarterly meeting"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	for _, r := range resp.Results {
		if r.ItemID == ids["report.pdf"] {
			t.Error("orphan index entry surfaced in results")
		}
	}
}

func TestSearchFilters(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	ids := seedDocuments(t, svc)

	resp, err := svc.Search(context.Background(), "alice", &types.SearchRequest{
		Query: "quarterly meeting",
		Tags:  "planning",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(resp.Results) != 1 || resp.Results[0].ItemID != ids["notes.txt"] {
		t.Errorf("results = %+v, want only notes.txt", resp.Results)
	}
}

func TestResort(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(docstore.NewMemoryStore())
	seedDocuments(t, svc)

	memKV, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatalf("NewMemoryKV: %v", err)
	}
	svc.kvClient = &kv.Client{KVStore: memKV}

	resp, err := svc.Search(ctx, "alice", &types.SearchRequest{Query: "quarterly meeting"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}

	resorted, err := svc.Resort(ctx, "alice", &types.ResortRequest{
		SessionID: resp.SessionID,
		Sort:      string(search.SortTitleAsc),
	})
	if err != nil {
		t.Fatalf("Resort: %v", err)
	}

	if len(resorted.Results) != 2 {
		t.Fatalf("resorted = %d", len(resorted.Results))
	}
	if resorted.Results[0].Title != "Meeting Notes" {
		t.Errorf("first title = %q, want Meeting Notes", resorted.Results[0].Title)
	}

	// 未知会话
	if _, err := svc.Resort(ctx, "alice", &types.ResortRequest{SessionID: "gone", Sort: "title-asc"}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResortWithoutCache(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())

	_, err := svc.Resort(context.Background(), "alice", &types.ResortRequest{SessionID: "x"})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
