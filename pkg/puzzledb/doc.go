// Package puzzledb loads the Lichess puzzle database and carves it into
// puzzle stores.
//
// # Database
//
// The source is the CSV dump published at database.lichess.org, optionally
// zstd compressed. [Open] reads it, keeps only puzzles that pass the quality
// [Thresholds] and splits the rest into mate and non-mate puzzles. [Fetch]
// downloads remote sources (http, https, s3) into the data directory first,
// and [OpenCached] keeps a gob snapshot of the filtered rows in a
// [cache.Cache] so later runs skip the CSV parse.
//
// # Stores
//
// A [Store] is a named, ordered set of puzzles with descriptive themes and
// opening tags. Stores are immutable: [Store.Where], [Criteria.Apply] and
// [Union] return new stores. Puzzles keep the order they had in the source
// file in every store.
//
//	db, err := puzzledb.Open(ctx, "lichess_db_puzzle.csv.zst", puzzledb.DefaultThresholds)
//	forks := puzzledb.Criteria{MinRating: 1200, MaxRating: 1600, AnyThemes: []string{"fork"}}.Apply(db.Store())
//	picks, err := forks.Sample(6, rng)
//
// [cache.Cache]: github.com/matzehuels/puzzlesheet/pkg/cache
package puzzledb
