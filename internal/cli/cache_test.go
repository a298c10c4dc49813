package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	expected := filepath.Join(home, ".cache", "puzzlesheet")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(base, "puzzlesheet"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if err := c.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(t.Context(), "k"); ok {
		t.Error("Get() after Set() on the null cache should miss")
	}
}
