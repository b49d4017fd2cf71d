package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yemou/archivault/pkg/internal/docstore"
)

func TestTrashAndRestore(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	itemID := mustSaveAt(t, svc, "alice", "", "report.pdf")

	if err := svc.TrashItem(ctx, "alice", itemID); err != nil {
		t.Fatalf("TrashItem: %v", err)
	}

	if _, err := store.Items().Get(ctx, itemID); !errors.Is(err, docstore.ErrNotFound) {
		t.Error("trashed item still readable as active")
	}

	// 回收站期间投影保持不动
	if entries, _ := store.Index().ByItemID(ctx, itemID); len(entries) != 1 {
		t.Errorf("index entries = %d, want untouched", len(entries))
	}

	list, err := svc.ListTrash(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTrash: %v", err)
	}
	if list.Total != 1 || list.Items[0].ID != itemID {
		t.Errorf("trash list = %+v", list)
	}

	restored, err := svc.RestoreItems(ctx, "alice", []string{itemID, "missing"})
	if err != nil {
		t.Fatalf("RestoreItems: %v", err)
	}
	if restored != 1 {
		t.Errorf("restored = %d", restored)
	}

	item, err := store.Items().Get(ctx, itemID)
	if err != nil {
		t.Fatalf("item not active after restore: %v", err)
	}
	if item.Status != "active" {
		t.Errorf("status = %q", item.Status)
	}
}

func TestTrashItemOwnership(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())
	itemID := mustSaveAt(t, svc, "alice", "", "report.pdf")

	if err := svc.TrashItem(context.Background(), "mallory", itemID); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestPurgeItemsOnlyFromTrash(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	trashedID := mustSaveAt(t, svc, "alice", "", "old.pdf")
	activeID := mustSaveAt(t, svc, "alice", "", "live.pdf")

	if err := svc.TrashItem(ctx, "alice", trashedID); err != nil {
		t.Fatalf("TrashItem: %v", err)
	}

	// 活跃条目不在回收站，彻底清除请求对它是空操作
	purged, err := svc.PurgeItems(ctx, "alice", []string{trashedID, activeID})
	if err != nil {
		t.Fatalf("PurgeItems: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	if entries, _ := store.Index().ByItemID(ctx, trashedID); len(entries) != 0 {
		t.Errorf("index entries after purge = %d", len(entries))
	}
	if collections, _ := store.Collections().ByItemID(ctx, trashedID); len(collections) != 0 {
		t.Errorf("collection entries after purge = %d", len(collections))
	}

	if _, err := store.Items().Get(ctx, activeID); err != nil {
		t.Errorf("active item affected by purge: %v", err)
	}

	profile, _ := store.Profiles().Get(ctx, "alice")
	if uploads := profile.Uploads(); len(uploads) != 1 || uploads[0].ItemID != activeID {
		t.Errorf("profile uploads = %+v", uploads)
	}
}

func TestPurgeItemsValidation(t *testing.T) {
	svc := newTestService(docstore.NewMemoryStore())

	if _, err := svc.PurgeItems(context.Background(), "alice", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if _, err := svc.RestoreItems(context.Background(), "alice", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAutoClean(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	oldID := mustSaveAt(t, svc, "alice", "", "old.pdf")
	newID := mustSaveAt(t, svc, "alice", "", "new.pdf")

	for _, id := range []string{oldID, newID} {
		if err := svc.TrashItem(ctx, "alice", id); err != nil {
			t.Fatalf("TrashItem: %v", err)
		}
	}

	// 两条都是刚删除的，截止点在删除之前，一条都不清
	purged, err := svc.AutoClean(ctx, "alice", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("AutoClean: %v", err)
	}
	if purged != 0 {
		t.Errorf("purged = %d, want 0", purged)
	}

	// 截止点在未来，全部过期
	purged, err = svc.AutoClean(ctx, "alice", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("AutoClean: %v", err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}

	if list, _ := svc.ListTrash(ctx, "alice"); list.Total != 0 {
		t.Errorf("trash not empty after clean: %+v", list)
	}

	if _, err := svc.AutoClean(ctx, "alice", time.Time{}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for zero time", err)
	}
}

func TestGetItemCountsViews(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	itemID := mustSaveAt(t, svc, "alice", "", "report.pdf")

	for i := 0; i < 3; i++ {
		if _, err := svc.GetItem(ctx, "alice", itemID); err != nil {
			t.Fatalf("GetItem: %v", err)
		}
	}

	item, _ := store.Items().Get(ctx, itemID)
	if item.Views != 3 {
		t.Errorf("views = %d, want 3", item.Views)
	}
}

func TestUploadsSkipsDeleted(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	keepID := mustSaveAt(t, svc, "alice", "", "keep.pdf")
	goneID := mustSaveAt(t, svc, "alice", "", "gone.pdf")

	// 绕过服务直接删主记录，档案里残留引用
	if err := store.Items().Delete(ctx, goneID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	uploads, err := svc.Uploads(ctx, "alice")
	if err != nil {
		t.Fatalf("Uploads: %v", err)
	}

	if len(uploads) != 1 || uploads[0].ID != keepID {
		t.Errorf("uploads = %+v", uploads)
	}
}
