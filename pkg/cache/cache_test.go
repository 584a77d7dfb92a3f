package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	key := Key("render", "svg", []string{"a", "b"})

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get() before Set = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, key, []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get() after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get() = %q, want <svg/>", data)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get() after Delete = hit")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete() of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still hit")
	}
}

func TestFileCacheBinaryDocuments(t *testing.T) {
	// PDF and PNG payloads are binary; they must round-trip byte-exact.
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	doc := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF, '\n', 0x1A}
	if err := c.Set(ctx, "png", doc, time.Hour); err != nil {
		t.Fatal(err)
	}

	got, hit, err := c.Get(ctx, "png")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v", hit, err)
	}
	if string(got) != string(doc) {
		t.Errorf("Get() = %x, want %x", got, doc)
	}
}

func TestFileCacheTruncatedEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// An entry shorter than the expiry header is corrupt and must read
	// as a miss, not an error.
	path := c.(*FileCache).path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() of truncated entry = hit %v, err %v", hit, err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("truncated entry should be removed on read")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("NullCache Get = hit %v, err %v", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestKeyStability(t *testing.T) {
	a := Key("render", "svg", 8.0, []string{"x"})
	b := Key("render", "svg", 8.0, []string{"x"})
	if a != b {
		t.Error("identical inputs produced different keys")
	}

	c := Key("render", "svg", 9.0, []string{"x"})
	if a == c {
		t.Error("different inputs produced the same key")
	}

	if got := Key("render"); len(got) != len("render")+1+64 {
		t.Errorf("key length = %d, want prefix + ':' + 64 hex chars", len(got))
	}
}
