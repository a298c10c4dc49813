// Package storage persists sheets and stores as JSON files.
//
// The data directory holds one file per item:
//
//	<data_dir>/sheets/s1.json
//	<data_dir>/stores/p1.json
//	<data_dir>/db/lichess_db_puzzle.csv.zst
//
// Sheet files use the long-standing save format, so sheets exported by
// earlier versions still load:
//
//	{
//	  "name": "monday",
//	  "elements": [{"PuzzleId": "00sHx", "FEN": "q3k1nr/..."}, {"FEN": "8/8/..."}],
//	  "left_header": "Chess club",
//	  "right_header": "Forks",
//	  "footer_text": ""
//	}
//
// Stores only record puzzle ids and are rebuilt against the loaded
// database. Every write replaces its file atomically.
package storage
