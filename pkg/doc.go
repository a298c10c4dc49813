// Package pkg provides the libraries behind psg, the chess puzzle sheet
// generator.
//
// # Overview
//
// psg turns the Lichess puzzle database into printable worksheets. Puzzles
// are filtered into named stores, sampled onto sheets of up to twelve
// positions and printed as one A4 page each.
//
// # Data Flow
//
//	Lichess CSV (plain or .zst, local, http or s3)
//	         ↓
//	    [puzzledb] parse, quality-filter, derive stores
//	         ↓
//	    [sheet] collect elements, headers and footer
//	         ↓
//	    [render] diagrams, page layout, PDF
//
// # Main Packages
//
// [position] wraps FEN parsing and the puzzle setup move.
//
// [puzzledb] loads the database and implements store filters, unions and
// sampling.
//
// [sheet] holds sheets and the id/name registries for sheets and stores.
//
// [storage] saves sheets and stores as JSON in the data directory.
//
// [render] draws board diagrams and lays them out on the PDF page.
//
// # Infrastructure
//
// [config] resolves settings from defaults, config.toml, .env, PSG_*
// variables and flags. [cache] keeps parsed database snapshots between runs.
// [observability] lets the CLI log what the libraries do. [errors] carries
// machine-readable error codes.
//
// [position]: github.com/matzehuels/puzzlesheet/pkg/position
// [puzzledb]: github.com/matzehuels/puzzlesheet/pkg/puzzledb
// [sheet]: github.com/matzehuels/puzzlesheet/pkg/sheet
// [storage]: github.com/matzehuels/puzzlesheet/pkg/storage
// [render]: github.com/matzehuels/puzzlesheet/pkg/render
// [config]: github.com/matzehuels/puzzlesheet/pkg/config
// [cache]: github.com/matzehuels/puzzlesheet/pkg/cache
// [observability]: github.com/matzehuels/puzzlesheet/pkg/observability
// [errors]: github.com/matzehuels/puzzlesheet/pkg/errors
package pkg
