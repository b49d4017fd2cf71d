package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yemou/archivault/pkg/internal/docstore"
	"github.com/yemou/archivault/pkg/internal/types"
)

func mustCreateFolder(t *testing.T, svc *ArchiveService, owner, parent, name string) *types.FolderInfo {
	t.Helper()

	folder, err := svc.CreateFolder(context.Background(), owner, &types.CreateFolderRequest{Name: name, Path: parent})
	if err != nil {
		t.Fatalf("CreateFolder %s%s: %v", parent, name, err)
	}

	return folder
}

func mustSaveAt(t *testing.T, svc *ArchiveService, owner, path, name string) string {
	t.Helper()

	req := saveReq(name)
	req.Path = path

	resp, err := svc.SaveItem(context.Background(), owner, req)
	if err != nil {
		t.Fatalf("SaveItem %s%s: %v", path, name, err)
	}

	return resp.Item.ID
}

func TestCreateFolderValidation(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	ctx := context.Background()

	cases := []types.CreateFolderRequest{
		{Name: "  "},
		{Name: "a/b"},
		{Name: "ok", Path: "Docs"}, // 父路径缺少结尾 /
	}

	for _, req := range cases {
		if _, err := svc.CreateFolder(ctx, "alice", &req); !errors.Is(err, ErrValidation) {
			t.Errorf("CreateFolder(%+v) err = %v, want ErrValidation", req, err)
		}
	}
}

func TestListPath(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	ctx := context.Background()

	mustCreateFolder(t, svc, "alice", "", "Docs")
	mustCreateFolder(t, svc, "alice", "Docs/", "Sub")
	mustSaveAt(t, svc, "alice", "", "root.pdf")
	mustSaveAt(t, svc, "alice", "Docs/", "inner.pdf")
	mustSaveAt(t, svc, "alice", "Docs/Sub/", "deep.pdf")

	// 根目录只见顶层内容
	resp, err := svc.ListPath(ctx, "alice", "")
	if err != nil {
		t.Fatalf("ListPath root: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Name != "root.pdf" {
		t.Errorf("root items = %+v", resp.Items)
	}
	if len(resp.Folders) != 1 || resp.Folders[0].Name != "Docs" {
		t.Errorf("root folders = %+v", resp.Folders)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d", resp.Total)
	}

	// 子目录一层，不递归
	resp, err = svc.ListPath(ctx, "alice", "Docs/")
	if err != nil {
		t.Fatalf("ListPath Docs/: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Name != "inner.pdf" {
		t.Errorf("Docs/ items = %+v", resp.Items)
	}
	if len(resp.Folders) != 1 || resp.Folders[0].Name != "Sub" {
		t.Errorf("Docs/ folders = %+v", resp.Folders)
	}

	if _, err := svc.ListPath(ctx, "alice", "Docs"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for path without trailing /", err)
	}
}

func TestRenameFolderCascades(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	docs := mustCreateFolder(t, svc, "alice", "", "Docs")
	mustCreateFolder(t, svc, "alice", "Docs/", "Sub")
	innerID := mustSaveAt(t, svc, "alice", "Docs/", "inner.pdf")
	deepID := mustSaveAt(t, svc, "alice", "Docs/Sub/", "deep.pdf")

	resp, err := svc.RenameFolder(ctx, "alice", docs.ID, &types.RenameFolderRequest{NewName: "Papers"})
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}

	if resp.Folder.FullPath != "Papers/" {
		t.Errorf("full path = %q", resp.Folder.FullPath)
	}
	if resp.MovedFolders != 1 || resp.MovedItems != 2 {
		t.Errorf("moved folders = %d items = %d", resp.MovedFolders, resp.MovedItems)
	}

	inner, _ := store.Items().Get(ctx, innerID)
	if inner.Path != "Papers/" {
		t.Errorf("inner path = %q", inner.Path)
	}

	deep, _ := store.Items().Get(ctx, deepID)
	if deep.Path != "Papers/Sub/" {
		t.Errorf("deep path = %q", deep.Path)
	}

	subs, _ := store.Folders().ListByParent(ctx, "alice", "Papers/")
	if len(subs) != 1 || subs[0].FullPath != "Papers/Sub/" {
		t.Errorf("sub folders = %+v", subs)
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	docs := mustCreateFolder(t, svc, "alice", "", "Docs")
	sub := mustCreateFolder(t, svc, "alice", "Docs/", "Sub")
	innerID := mustSaveAt(t, svc, "alice", "Docs/", "inner.pdf")
	rootID := mustSaveAt(t, svc, "alice", "", "root.pdf")

	resp, err := svc.DeleteFolder(ctx, "alice", docs.ID)
	if err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}

	if resp.DeletedFolders != 2 {
		t.Errorf("deleted folders = %d, want 2 (folder + descendant)", resp.DeletedFolders)
	}
	if resp.TrashedItems != 1 {
		t.Errorf("trashed items = %d, want 1", resp.TrashedItems)
	}

	if _, err := store.Folders().Get(ctx, sub.ID); !errors.Is(err, docstore.ErrNotFound) {
		t.Error("descendant folder survived delete")
	}

	// 目录内条目进回收站而不是被清除
	if _, err := store.Items().Get(ctx, innerID); !errors.Is(err, docstore.ErrNotFound) {
		t.Error("trashed item still readable as active")
	}

	trashed, _ := store.Items().ListTrashed(ctx, "alice")
	if len(trashed) != 1 || trashed[0].ID != innerID {
		t.Errorf("trash = %+v", trashed)
	}

	// 目录外的条目不受影响
	if _, err := store.Items().Get(ctx, rootID); err != nil {
		t.Errorf("root item affected by folder delete: %v", err)
	}
}

func TestFolderOwnership(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	ctx := context.Background()

	docs := mustCreateFolder(t, svc, "alice", "", "Docs")

	if _, err := svc.RenameFolder(ctx, "mallory", docs.ID, &types.RenameFolderRequest{NewName: "X"}); !errors.Is(err, ErrValidation) {
		t.Errorf("rename err = %v, want ErrValidation", err)
	}

	if _, err := svc.DeleteFolder(ctx, "mallory", docs.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("delete err = %v, want ErrValidation", err)
	}
}
