package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yemou/archivault/pkg/internal/model"
)

func newTestItem(id, owner, path string) *model.ArchiveItem {
	return &model.ArchiveItem{
		ID:         id,
		Name:       id + ".pdf",
		Owner:      owner,
		Type:       "application/pdf",
		Size:       1024,
		Path:       path,
		Status:     model.StatusActive,
		UploadedAt: time.Now().UTC(),
	}
}

func TestMemoryItemsLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	items := store.Items()

	if err := items.Put(ctx, newTestItem("a", "alice", "")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := items.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "a.pdf" {
		t.Errorf("Name = %q, want a.pdf", got.Name)
	}

	if err := items.Update(ctx, "a", map[string]any{"name": "renamed.pdf", "meta_title": "Report"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ = items.Get(ctx, "a")
	if got.Name != "renamed.pdf" || got.Metadata.Title != "Report" {
		t.Errorf("after update: name=%q title=%q", got.Name, got.Metadata.Title)
	}

	if err := items.Update(ctx, "missing", map[string]any{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryItemsTrashRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	items := store.Items()

	_ = items.Put(ctx, newTestItem("a", "alice", ""))

	if err := items.Trash(ctx, "a"); err != nil {
		t.Fatalf("Trash: %v", err)
	}

	// 回收站条目对常规读取不可见
	if _, err := items.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get trashed = %v, want ErrNotFound", err)
	}

	trashed, err := items.ListTrashed(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTrashed: %v", err)
	}
	if len(trashed) != 1 || trashed[0].Status != model.StatusTrashed {
		t.Fatalf("ListTrashed = %+v, want one trashed item", trashed)
	}

	if err := items.Restore(ctx, "a"); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	got, err := items.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get restored: %v", err)
	}
	if got.Status != model.StatusActive {
		t.Errorf("Status = %q, want active", got.Status)
	}
}

func TestMemoryItemsListByPath(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	items := store.Items()

	_ = items.Put(ctx, newTestItem("root", "alice", ""))
	_ = items.Put(ctx, newTestItem("docs", "alice", "Docs/"))
	_ = items.Put(ctx, newTestItem("nested", "alice", "Docs/Sub/"))
	_ = items.Put(ctx, newTestItem("other", "bob", ""))

	// 精确路径：根目录不递归包含子目录条目
	atRoot, _ := items.ListByPath(ctx, "alice", "")
	if len(atRoot) != 1 || atRoot[0].ID != "root" {
		t.Errorf("ListByPath root = %+v, want only root item", atRoot)
	}

	inDocs, _ := items.ListByPath(ctx, "alice", "Docs/")
	if len(inDocs) != 1 || inDocs[0].ID != "docs" {
		t.Errorf("ListByPath Docs/ = %+v", inDocs)
	}

	underDocs, _ := items.ListByPathPrefix(ctx, "alice", "Docs/")
	if len(underDocs) != 2 {
		t.Errorf("ListByPathPrefix Docs/ = %d items, want 2", len(underDocs))
	}
}

func TestMemoryIndexByItemID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	index := store.Index()

	_ = index.Put(ctx, &model.SearchIndexEntry{ID: "i1", ItemID: "a", Owner: "alice", Title: "One"})
	_ = index.Put(ctx, &model.SearchIndexEntry{ID: "i2", ItemID: "b", Owner: "alice", Title: "Two"})

	if err := index.UpdateByItemID(ctx, "a", map[string]any{"title": "Renamed"}); err != nil {
		t.Fatalf("UpdateByItemID: %v", err)
	}

	got, _ := index.ByItemID(ctx, "a")
	if len(got) != 1 || got[0].Title != "Renamed" {
		t.Fatalf("ByItemID = %+v", got)
	}

	if err := index.DeleteByItemID(ctx, "a"); err != nil {
		t.Fatalf("DeleteByItemID: %v", err)
	}

	all, _ := index.All(ctx, "alice")
	if len(all) != 1 || all[0].ItemID != "b" {
		t.Errorf("All after delete = %+v", all)
	}
}

func TestMemoryProfileGetMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	profiles := store.Profiles()

	// 缺失档案返回零值而非错误，上传工作流依赖这点追加首条记录
	profile, err := profiles.Get(ctx, "carol")
	if err != nil {
		t.Fatalf("Get missing profile: %v", err)
	}
	if profile.Owner != "carol" || profile.UploadsJSON != "" {
		t.Errorf("zero profile = %+v", profile)
	}

	profile.SetUploads([]model.UploadSummary{{ItemID: "a", Name: "a.pdf", Size: 10}})
	if err := profiles.Save(ctx, profile); err != nil {
		t.Fatalf("Save: %v", err)
	}

	saved, _ := profiles.Get(ctx, "carol")
	if got := saved.Uploads(); len(got) != 1 || got[0].ItemID != "a" {
		t.Errorf("Uploads = %+v", got)
	}
}

func TestMemoryFolders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	folders := store.Folders()

	_ = folders.Put(ctx, &model.Folder{ID: "f1", Name: "Docs", Owner: "alice", FullPath: "Docs/", ParentPath: ""})
	_ = folders.Put(ctx, &model.Folder{ID: "f2", Name: "Sub", Owner: "alice", FullPath: "Docs/Sub/", ParentPath: "Docs/"})

	atRoot, _ := folders.ListByParent(ctx, "alice", "")
	if len(atRoot) != 1 || atRoot[0].ID != "f1" {
		t.Errorf("ListByParent root = %+v", atRoot)
	}

	subtree, _ := folders.ListByPrefix(ctx, "alice", "Docs/")
	if len(subtree) != 2 {
		t.Errorf("ListByPrefix = %d folders, want 2", len(subtree))
	}

	if err := folders.Update(ctx, "f2", map[string]any{"full_path": "Archive/Sub/", "parent_path": "Archive/"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	moved, _ := folders.Get(ctx, "f2")
	if moved.FullPath != "Archive/Sub/" {
		t.Errorf("FullPath = %q", moved.FullPath)
	}
}
