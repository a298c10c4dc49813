package puzzledb

import (
	"slices"
	"strings"
)

// Mixed is the descriptive tag of a store whose puzzles share no theme or
// opening worth naming.
const Mixed = "mixed"

// ThemeGroup is a named group of Lichess puzzle themes, in the order the
// Lichess training page lists them.
type ThemeGroup struct {
	Name   string
	Themes []string
}

// ThemeGroups is the catalogue of every theme that occurs in the database.
var ThemeGroups = []ThemeGroup{
	{"phases", []string{
		"opening", "middlegame", "endgame",
		"rookEndgame", "bishopEndgame", "pawnEndgame", "knightEndgame",
		"queenEndgame", "queenRookEndgame",
	}},
	{"motifs", []string{
		"advancedPawn", "attackingF2F7", "capturingDefender", "discoveredAttack",
		"doubleCheck", "exposedKing", "fork", "hangingPiece", "kingsideAttack",
		"pin", "queensideAttack", "sacrifice", "skewer", "trappedPiece",
	}},
	{"advanced", []string{
		"attraction", "clearance", "defensiveMove", "deflection", "interference",
		"intermezzo", "quietMove", "xRayAttack", "zugzwang",
	}},
	{"mates", []string{
		"mate", "mateIn1", "mateIn2", "mateIn3", "mateIn4", "mateIn5",
		"anastasiaMate", "arabianMate", "backRankMate", "bodenMate",
		"doubleBishopMate", "dovetailMate", "hookMate", "smotheredMate",
	}},
	{"special moves", []string{"castling", "enPassant", "promotion", "underPromotion"}},
	{"goals", []string{"equality", "advantage", "crushing", "mate"}},
	{"lengths", []string{"oneMove", "short", "long", "veryLong"}},
	{"origin", []string{"master", "masterVsMaster", "superGM"}},
}

var canonicalThemes = func() map[string]string {
	m := make(map[string]string)
	for _, g := range ThemeGroups {
		for _, t := range g.Themes {
			m[strings.ToLower(t)] = t
		}
	}
	return m
}()

// AllThemes returns every known theme, sorted.
func AllThemes() []string {
	out := make([]string, 0, len(canonicalThemes))
	for _, t := range canonicalThemes {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Canonical returns the spelling Lichess uses for theme, matching case
// insensitively. ok is false for unknown themes.
func Canonical(theme string) (canonical string, ok bool) {
	canonical, ok = canonicalThemes[strings.ToLower(strings.TrimSpace(theme))]
	return canonical, ok
}

// CanonicalAll canonicalizes themes, dropping duplicates. Unknown themes are
// returned separately so callers can report them.
func CanonicalAll(themes []string) (known, unknown []string) {
	seen := make(map[string]bool)
	for _, t := range themes {
		c, ok := Canonical(t)
		if !ok {
			unknown = append(unknown, t)
			continue
		}
		if !seen[c] {
			seen[c] = true
			known = append(known, c)
		}
	}
	return known, unknown
}

func isMateTheme(theme string) bool {
	return theme == "mate" || strings.HasPrefix(theme, "mateIn") || strings.HasSuffix(theme, "Mate")
}
