package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %q, %v, want miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Errorf("Clear() error = %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if _, hit, _ := c.Get(ctx, "db"); hit {
		t.Fatal("Get() on empty cache hit")
	}
	if err := c.Set(ctx, "db", []byte("snapshot"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "db")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v, want hit", hit, err)
	}
	if string(data) != "snapshot" {
		t.Errorf("Get() = %q, want %q", data, "snapshot")
	}

	if err := c.Delete(ctx, "db"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "db"); hit {
		t.Error("Get() after Delete() hit")
	}
	if err := c.Delete(ctx, "db"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("Get() before expiry missed")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() after expiry hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry still on disk: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want quiet miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir removed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries", len(entries))
	}
}

func TestKey(t *testing.T) {
	a := Key("db", "/tmp/puzzles.csv", int64(10), 80, 20)
	b := Key("db", "/tmp/puzzles.csv", int64(10), 80, 30)
	if a == b {
		t.Error("Key() ignores its parts")
	}
	if a != Key("db", "/tmp/puzzles.csv", int64(10), 80, 20) {
		t.Error("Key() is not deterministic")
	}
	if len(a) != len("db:")+64 {
		t.Errorf("Key() = %q, want prefix plus sha256", a)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false for wrapped error")
	}
	if !errors.Is(err, ErrTransient) {
		t.Error("Retryable() hides the wrapped error")
	}
	if IsRetryable(ErrTransient) {
		t.Error("IsRetryable() = true for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, nil, 1, false},
		{"non-retryable", 5, permanent, 1, true},
		{"recovers", 1, Retryable(ErrTransient), 2, false},
		{"exhausted", 5, Retryable(ErrTransient), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, fast, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, DefaultBackoff, func() error {
		return Retryable(ErrTransient)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}
