package puzzledb

import (
	"os"
	"path/filepath"
	"testing"
)

// fixtureCSV holds six puzzles. 00sJ9 fails the rating deviation bar and
// 00lowP the popularity bar.
const fixtureCSV = `PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl,OpeningTags
00sHx,q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B1PP1b2/B5PP/5K2 b k - 0 17,e8d7 a2e6 d7d8 f7f8,1760,80,83,72,mate mateIn2 middlegame short,https://lichess.org/yyznGmXs/black#34,Italian_Game Italian_Game_Classical_Variation
00sJ9,r3r1k1/p4ppp/2p2n2/1p6/3P1qb1/2NQR3/PPB2PP1/R1B3K1 w - - 5 18,e3g3 e8e1 g1h2 e1c1 a1c1 f4h6 h2g1 h6c1,2671,105,87,325,advantage attraction fork long sacrifice veryLong,https://lichess.org/gyFeQsOE#35,French_Defense French_Defense_Exchange_Variation
00sO1,1k1r4/pp3pp1/2p1p3/4b3/P3n1P1/8/KPP2PP1/3rB2R b - - 1 25,d8d4 b2b4 e5d4 h1d1,1112,75,83,519,crushing endgame fork short,https://lichess.org/b0h1fLoK/black#50,
00xyz,6k1/5ppp/8/8/8/8/5PPP/3R2K1 b - - 0 1,g8f8 d1d8,900,70,95,1200,mate mateIn1 backRankMate endgame oneMove,https://lichess.org/abcdefgh#1,
00lowP,6k1/5ppp/8/8/8/8/5PPP/3R2K1 b - - 0 1,g8f8 d1d8,950,70,5,30,mate mateIn1 endgame oneMove,https://lichess.org/abcdefgh#2,
01fork,r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4,h5f7 e8f7 c4d5 f7e8 d5c6,1450,76,90,800,fork middlegame short,https://lichess.org/xyz#7,Italian_Game Sicilian_Defense_Najdorf_Variation
`

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func puzzle(id string, seq, rating, moves int, themes, openings []string) *Puzzle {
	m := make([]string, moves)
	for i := range m {
		m[i] = "e2e4"
	}
	return &Puzzle{ID: id, Seq: seq, Rating: rating, Moves: m, Themes: themes, OpeningTags: openings}
}
