// Package sheet holds puzzle sheets and the repositories that name them.
//
// A [Sheet] is an ordered list of at most [MaxElements] positions plus the
// texts printed around them. Elements are plain data, a FEN and optionally
// the Lichess puzzle it came from, so a sheet can be saved, loaded and
// printed without the puzzle database.
//
// [Repository] hands out short ids ("s1", "p3") and resolves either an id
// or a name, which is what every psg command takes as argument.
package sheet
