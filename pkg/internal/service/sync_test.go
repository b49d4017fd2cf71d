package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/nlp"
	"github.com/yemou/archivault/pkg/internal/types"
)

// stubProcessor 固定返回内容处理结果或错误.
type stubProcessor struct {
	result *nlp.ProcessResult
	err    error
}

func (p *stubProcessor) Process(ctx context.Context, fileURL, fileType string) (*nlp.ProcessResult, error) {
	if p.err != nil {
		return nil, p.err
	}

	if p.result != nil {
		return p.result, nil
	}

	return &nlp.ProcessResult{}, nil
}

func newTestService(store docstore.Store) *ArchiveService {
	return &ArchiveService{store: store}
}

func saveReq(name string) *types.SaveItemRequest {
	return &types.SaveItemRequest{
		Name:      name,
		Type:      "application/pdf",
		Size:      2048,
		URL:       "http://blob.local/archivault/alice/2026/08/" + name,
		ObjectKey: "alice/2026/08/" + name,
		Metadata: types.ItemMetadataInput{
			Title:    "Quarterly Report",
			Tags:     []string{"finance", "q3"},
			Category: "work",
		},
	}
}

func TestSaveItemFanOut(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	svc.processor = &stubProcessor{result: &nlp.ProcessResult{Text: "extracted body", Embedding: []float64{0.1, 0.2}}}

	resp, err := svc.SaveItem(ctx, "alice", saveReq("report.pdf"))
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	if resp.WorkflowID == "" {
		t.Error("expected workflow id")
	}
	if resp.Degraded {
		t.Error("unexpected degraded flag")
	}

	// 一次上传后恰好各一条：主记录、索引、分类投影
	itemID := resp.Item.ID

	if _, err := store.Items().Get(ctx, itemID); err != nil {
		t.Fatalf("item missing after save: %v", err)
	}

	entries, _ := store.Index().ByItemID(ctx, itemID)
	if len(entries) != 1 {
		t.Fatalf("index entries = %d, want 1", len(entries))
	}
	if entries[0].Content != "extracted body" || len(entries[0].Embedding()) != 2 {
		t.Errorf("index entry = %+v", entries[0])
	}

	collections, _ := store.Collections().ByItemID(ctx, itemID)
	if len(collections) != 1 {
		t.Fatalf("collection entries = %d, want 1", len(collections))
	}
	if collections[0].Path != "/work/pdf" {
		t.Errorf("collection path = %q, want /work/pdf", collections[0].Path)
	}
	if collections[0].IndexID != entries[0].ID {
		t.Error("collection entry does not reference the index entry")
	}

	profile, _ := store.Profiles().Get(ctx, "alice")
	if uploads := profile.Uploads(); len(uploads) != 1 || uploads[0].ItemID != itemID {
		t.Errorf("profile uploads = %+v", uploads)
	}

	// 删除后全部清零
	if err := svc.DeleteItem(ctx, "alice", itemID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if _, err := store.Items().Get(ctx, itemID); !errors.Is(err, docstore.ErrNotFound) {
		t.Error("item still present after delete")
	}

	entries, _ = store.Index().ByItemID(ctx, itemID)
	if len(entries) != 0 {
		t.Errorf("index entries after delete = %d", len(entries))
	}

	collections, _ = store.Collections().ByItemID(ctx, itemID)
	if len(collections) != 0 {
		t.Errorf("collection entries after delete = %d", len(collections))
	}

	profile, _ = store.Profiles().Get(ctx, "alice")
	if uploads := profile.Uploads(); len(uploads) != 0 {
		t.Errorf("profile uploads after delete = %+v", uploads)
	}
}

func TestSaveItemValidation(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())

	req := saveReq("x.pdf")
	req.Name = "  "

	if _, err := svc.SaveItem(context.Background(), "alice", req); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	req = saveReq("x.pdf")
	req.Path = "Docs" // 目录必须以 / 结尾

	if _, err := svc.SaveItem(context.Background(), "alice", req); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestSaveItemDegradesOnProcessorFailure(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	svc.processor = &stubProcessor{err: errors.New("processor down")}

	resp, err := svc.SaveItem(ctx, "alice", saveReq("report.pdf"))
	if err != nil {
		t.Fatalf("SaveItem should degrade, got error: %v", err)
	}

	if !resp.Degraded {
		t.Error("expected degraded flag")
	}

	entries, _ := store.Index().ByItemID(ctx, resp.Item.ID)
	if len(entries) != 1 || entries[0].Content != "" || entries[0].EmbeddingJSON != "" {
		t.Errorf("degraded index entry = %+v", entries)
	}
}

func TestEditMetadataSyncsIndex(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTestService(store)

	resp, err := svc.SaveItem(ctx, "alice", saveReq("report.pdf"))
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	info, err := svc.EditMetadata(ctx, "alice", resp.Item.ID, &types.EditItemMetadataRequest{
		Metadata: types.ItemMetadataInput{Title: "Annual Report", Category: "archive"},
	})
	if err != nil {
		t.Fatalf("EditMetadata: %v", err)
	}
	if info.Title != "Annual Report" {
		t.Errorf("title = %q", info.Title)
	}

	entries, _ := store.Index().ByItemID(ctx, resp.Item.ID)
	if len(entries) != 1 || entries[0].Title != "Annual Report" || entries[0].Category != "archive" {
		t.Errorf("index not synced: %+v", entries)
	}

	// 分类投影不随编辑更新
	collections, _ := store.Collections().ByItemID(ctx, resp.Item.ID)
	if len(collections) != 1 || collections[0].Path != "/work/pdf" {
		t.Errorf("collection entry changed on edit: %+v", collections)
	}
}

func TestEditMetadataRejectsOtherOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(docstore.NewMemoryStore())

	resp, _ := svc.SaveItem(ctx, "alice", saveReq("report.pdf"))

	_, err := svc.EditMetadata(ctx, "mallory", resp.Item.ID, &types.EditItemMetadataRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestMoveItemUpdatesOnlyPath(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTestService(store)

	resp, _ := svc.SaveItem(ctx, "alice", saveReq("report.pdf"))

	if err := svc.MoveItem(ctx, "alice", resp.Item.ID, &types.MoveItemRequest{Path: "Docs/"}); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}

	item, _ := store.Items().Get(ctx, resp.Item.ID)
	if item.Path != "Docs/" {
		t.Errorf("path = %q", item.Path)
	}

	// 索引与投影不携带目录信息，不应被触碰
	entries, _ := store.Index().ByItemID(ctx, resp.Item.ID)
	if len(entries) != 1 {
		t.Errorf("index entries = %d", len(entries))
	}

	if err := svc.MoveItem(ctx, "alice", resp.Item.ID, &types.MoveItemRequest{Path: "bad"}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for path without trailing /", err)
	}
}
