package puzzledb

import (
	"bytes"
	"context"
	"encoding/gob"
	"os"
	"time"

	"github.com/matzehuels/puzzlesheet/pkg/cache"
	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/observability"
)

const snapshotKeyType = "db"

// snapshot is the cached form of a loaded database.
type snapshot struct {
	Source     string
	Thresholds Thresholds
	Puzzles    []*Puzzle
}

// SnapshotKey identifies the snapshot of the database file at path. Any
// change to the file or the thresholds yields a different key.
func SnapshotKey(path string, info os.FileInfo, t Thresholds) string {
	return cache.Key(snapshotKeyType, path, info.Size(), info.ModTime().UnixNano(),
		t.MaxRatingDeviation, t.MinPopularity)
}

// OpenCached opens the database at path, preferring a snapshot from c. On a
// miss the CSV is parsed and a new snapshot stored with ttl.
func OpenCached(ctx context.Context, c cache.Cache, path string, t Thresholds, ttl time.Duration) (*Database, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "open puzzle database")
	}
	key := SnapshotKey(path, info, t)

	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		var snap snapshot
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err == nil {
			observability.Cache().OnCacheHit(ctx, snapshotKeyType)
			return New(snap.Source, snap.Puzzles, snap.Thresholds), nil
		}
		_ = c.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, snapshotKeyType)

	db, err := Open(ctx, path, t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	snap := snapshot{Source: db.Source, Thresholds: t, Puzzles: db.all.puzzles}
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return db, nil
	}
	if err := c.Set(ctx, key, buf.Bytes(), ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, snapshotKeyType, buf.Len())
	}
	return db, nil
}
