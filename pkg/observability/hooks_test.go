package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPrintHooks{}
	p.OnComposeStart(ctx, "s1", 6)
	p.OnComposeComplete(ctx, "s1", "6", 0, time.Second, nil)
	p.OnLossyText(ctx, "s1", "象棋")

	d := NoopDatabaseHooks{}
	d.OnFetch(ctx, "s3://bucket/puzzles.csv", 1024, time.Second, nil)
	d.OnLoadStart(ctx, "puzzles.csv")
	d.OnLoadComplete(ctx, "puzzles.csv", 100, time.Second, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "db")
	c.OnCacheMiss(ctx, "db")
	c.OnCacheSet(ctx, "db", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Print().(NoopPrintHooks); !ok {
		t.Error("Print() should return NoopPrintHooks by default")
	}
	if _, ok := Database().(NoopDatabaseHooks); !ok {
		t.Error("Database() should return NoopDatabaseHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPrint := &testPrintHooks{}
	SetPrintHooks(customPrint)
	if Print() != customPrint {
		t.Error("SetPrintHooks should set custom hooks")
	}
	customDB := &testDatabaseHooks{}
	SetDatabaseHooks(customDB)
	if Database() != customDB {
		t.Error("SetDatabaseHooks should set custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Database().(NoopDatabaseHooks); !ok {
		t.Error("Reset() should restore NoopDatabaseHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPrintHooks{}
	SetPrintHooks(custom)
	SetPrintHooks(nil)
	if Print() != custom {
		t.Error("SetPrintHooks(nil) should be ignored")
	}
}

type testPrintHooks struct{ NoopPrintHooks }
type testDatabaseHooks struct{ NoopDatabaseHooks }
type testCacheHooks struct{ NoopCacheHooks }
