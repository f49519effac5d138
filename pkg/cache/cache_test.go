package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || !bytes.Equal(data, []byte("payload")) {
		t.Errorf("Get = %q, %v, want payload hit", data, hit)
	}

	// Unknown keys miss without error.
	_, hit, err = c.Get(ctx, "unknown")
	if err != nil || hit {
		t.Errorf("Get(unknown) = hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("deleted entry should be a miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DiagramKey should include options in hash
	dk1 := k.DiagramKey("hash123", DiagramKeyOpts{Seed: 42})
	dk2 := k.DiagramKey("hash123", DiagramKeyOpts{Seed: 7})
	if dk1 == dk2 {
		t.Error("Different DiagramKeyOpts should produce different keys")
	}

	// LayoutKey
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{TableWidth: 220, GapX: 80})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{TableWidth: 300, GapX: 80})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Same inputs reproduce the same key.
	if dk1 != k.DiagramKey("hash123", DiagramKeyOpts{Seed: 42}) {
		t.Error("DiagramKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "source:prod:")

	key := scoped.DiagramKey("hash123", DiagramKeyOpts{})
	if len(key) < 15 || key[:12] != "source:prod:" {
		t.Errorf("ScopedKeyer DiagramKey should be prefixed: %s", key)
	}

	want := "source:prod:" + inner.LayoutKey("h", LayoutKeyOpts{})
	if got := scoped.LayoutKey("h", LayoutKeyOpts{}); got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if len(key) < 8 || key[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestLayoutKeyCoversAllGeometry(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{
		TableWidth: 220, TableHeight: 180,
		GapX: 80, GapY: 80,
		StartX: 100, StartY: 100,
		SeedsPerRow: 4, MaxSpiralSteps: 5000,
	}

	variants := map[string]LayoutKeyOpts{
		"table_width":      {TableWidth: 221, TableHeight: 180, GapX: 80, GapY: 80, StartX: 100, StartY: 100, SeedsPerRow: 4, MaxSpiralSteps: 5000},
		"table_height":     {TableWidth: 220, TableHeight: 181, GapX: 80, GapY: 80, StartX: 100, StartY: 100, SeedsPerRow: 4, MaxSpiralSteps: 5000},
		"gap_x":            {TableWidth: 220, TableHeight: 180, GapX: 81, GapY: 80, StartX: 100, StartY: 100, SeedsPerRow: 4, MaxSpiralSteps: 5000},
		"gap_y":            {TableWidth: 220, TableHeight: 180, GapX: 80, GapY: 81, StartX: 100, StartY: 100, SeedsPerRow: 4, MaxSpiralSteps: 5000},
		"start_x":          {TableWidth: 220, TableHeight: 180, GapX: 80, GapY: 80, StartX: 101, StartY: 100, SeedsPerRow: 4, MaxSpiralSteps: 5000},
		"start_y":          {TableWidth: 220, TableHeight: 180, GapX: 80, GapY: 80, StartX: 100, StartY: 101, SeedsPerRow: 4, MaxSpiralSteps: 5000},
		"seeds_per_row":    {TableWidth: 220, TableHeight: 180, GapX: 80, GapY: 80, StartX: 100, StartY: 100, SeedsPerRow: 5, MaxSpiralSteps: 5000},
		"max_spiral_steps": {TableWidth: 220, TableHeight: 180, GapX: 80, GapY: 80, StartX: 100, StartY: 100, SeedsPerRow: 4, MaxSpiralSteps: 5001},
	}

	baseKey := k.LayoutKey("h", base)
	for field, opts := range variants {
		if k.LayoutKey("h", opts) == baseKey {
			t.Errorf("changing %s did not change the layout key", field)
		}
	}
}
