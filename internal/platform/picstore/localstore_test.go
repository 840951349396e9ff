package picstore

import (
	"context"
	"testing"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(logger.Nop(), Config{
		Backend: BackendLocal,
		RootDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return store
}

func TestLocalStoreLifecycle(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	if res := store.Upload(ctx, "ABC_SUP001_red_1.jpg", []byte("bytes"), "image/jpeg"); !res.OK() {
		t.Fatalf("Upload failed: %+v", res)
	}

	exists, res := store.Exists(ctx, "ABC_SUP001_red_1.jpg")
	if !res.OK() || !exists {
		t.Fatalf("Exists = (%v, %+v), want (true, success)", exists, res)
	}

	if res := store.Move(ctx, "ABC_SUP001_red_1.jpg", "ABC_SUP002_red_1.jpg"); !res.OK() {
		t.Fatalf("Move failed: %+v", res)
	}

	data, res := store.Download(ctx, "ABC_SUP002_red_1.jpg")
	if !res.OK() || string(data) != "bytes" {
		t.Fatalf("Download after move = (%q, %+v)", data, res)
	}
	if _, res := store.Download(ctx, "ABC_SUP001_red_1.jpg"); res.Outcome != OutcomeNotFound {
		t.Fatalf("old name outcome = %q, want %q", res.Outcome, OutcomeNotFound)
	}

	if res := store.Delete(ctx, "ABC_SUP002_red_1.jpg"); !res.OK() {
		t.Fatalf("Delete failed: %+v", res)
	}
	if res := store.Delete(ctx, "ABC_SUP002_red_1.jpg"); res.Outcome != OutcomeNotFound {
		t.Fatalf("second delete outcome = %q, want %q", res.Outcome, OutcomeNotFound)
	}
}

func TestLocalStoreMoveMissing(t *testing.T) {
	store := newTestLocalStore(t)
	res := store.Move(context.Background(), "never_1.jpg", "never_2.jpg")
	if res.Outcome != OutcomeNotFound {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeNotFound)
	}
}

func TestLocalStoreList(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()
	for _, name := range []string{"ABC_SUP001_1.jpg", "ABC_SUP001_2.jpg", "XYZ_SUP002_1.jpg"} {
		if res := store.Upload(ctx, name, []byte("x"), ""); !res.OK() {
			t.Fatalf("Upload %q failed: %+v", name, res)
		}
	}

	names, res := store.List(ctx, "ABC_", 0)
	if !res.OK() {
		t.Fatalf("List failed: %+v", res)
	}
	if len(names) != 2 || names[0] != "ABC_SUP001_1.jpg" || names[1] != "ABC_SUP001_2.jpg" {
		t.Fatalf("List = %v", names)
	}

	limited, res := store.List(ctx, "", 1)
	if !res.OK() || len(limited) != 1 {
		t.Fatalf("List with limit = (%v, %+v)", limited, res)
	}
}

func TestLocalStoreRejectsEscapingNames(t *testing.T) {
	store := newTestLocalStore(t)
	res := store.Upload(context.Background(), "../escape.jpg", []byte("x"), "")
	if res.Outcome != OutcomeInvalidPath {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeInvalidPath)
	}
}
