package puzzledb

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

func loadFixture(t *testing.T) *Database {
	t.Helper()
	db, err := Load(context.Background(), strings.NewReader(fixtureCSV), "fixture", DefaultThresholds)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return db
}

func TestLoadQualityFilter(t *testing.T) {
	db := loadFixture(t)
	if got, want := db.Store().IDs(), []string{"00sHx", "00sO1", "00xyz", "01fork"}; !slices.Equal(got, want) {
		t.Errorf("Store().IDs() = %v, want %v", got, want)
	}
	if db.Store().Name != MainStoreName {
		t.Errorf("Store().Name = %q", db.Store().Name)
	}
	if _, ok := db.PuzzleByID("00sJ9"); ok {
		t.Error("puzzle with rating deviation 105 was loaded")
	}

	loose := Thresholds{MaxRatingDeviation: 200, MinPopularity: 0}
	all, err := Load(context.Background(), strings.NewReader(fixtureCSV), "fixture", loose)
	if err != nil {
		t.Fatal(err)
	}
	if all.Len() != 6 {
		t.Errorf("Len() with loose thresholds = %d, want 6", all.Len())
	}
}

func TestFindMate(t *testing.T) {
	db := loadFixture(t)
	tests := []struct {
		n    int
		want []string
	}{
		{1, []string{"00xyz"}},
		{2, []string{"00sHx"}},
		{3, nil},
	}
	for _, tt := range tests {
		s := db.FindMate(tt.n)
		got := s.IDs()
		if len(got) == 0 {
			got = nil
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("FindMate(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
	if got := db.FindMate(2).DisplayThemes(); !slices.Equal(got, []string{"mateIn2"}) {
		t.Errorf("FindMate(2).DisplayThemes() = %v", got)
	}
}

func TestFindMateLong(t *testing.T) {
	long := puzzle("long", 1, 2000, 14, []string{"mate", "veryLong"}, nil)
	db := New("mem", []*Puzzle{long, puzzle("short", 2, 1500, 2, []string{"mate", "mateIn1"}, nil)}, DefaultThresholds)
	if got := db.FindMate(7).IDs(); !slices.Equal(got, []string{"long"}) {
		t.Errorf("FindMate(7) = %v, want [long]", got)
	}
	if got := db.FindMate(7).Name; got != "mate in 7" {
		t.Errorf("FindMate(7).Name = %q", got)
	}
}

func TestFindThemes(t *testing.T) {
	db := loadFixture(t)
	if got := db.FindThemes([]string{"fork"}, "").IDs(); !slices.Equal(got, []string{"00sO1", "01fork"}) {
		t.Errorf("FindThemes(fork) = %v", got)
	}
	if got := db.FindThemes([]string{"fork", "middlegame"}, "").IDs(); !slices.Equal(got, []string{"01fork"}) {
		t.Errorf("FindThemes(fork, middlegame) = %v", got)
	}
	s := db.FindThemes([]string{"fork"}, "Italian_Game")
	if got := s.IDs(); !slices.Equal(got, []string{"01fork"}) {
		t.Errorf("FindThemes(fork, Italian_Game) = %v", got)
	}
	if !slices.Equal(s.OpeningTags, []string{"Italian_Game"}) {
		t.Errorf("FindThemes().OpeningTags = %v", s.OpeningTags)
	}
	if got := db.FindThemes([]string{"mateIn2"}, "").Len(); got != 0 {
		t.Errorf("FindThemes(mateIn2) returned %d mate puzzles", got)
	}
}

func TestOpenPlainAndCompressed(t *testing.T) {
	var zbuf bytes.Buffer
	enc, err := zstd.NewWriter(&zbuf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte(fixtureCSV)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"lichess_db_puzzle.csv", []byte(fixtureCSV)},
		{"lichess_db_puzzle.csv.zst", zbuf.Bytes()},
		{"renamed.csv", zbuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.name, tt.data)
			db, err := Open(context.Background(), path, DefaultThresholds)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if db.Len() != 4 {
				t.Errorf("Len() = %d, want 4", db.Len())
			}
			if db.Source != path {
				t.Errorf("Source = %q, want %q", db.Source, path)
			}
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(context.Background(), "/does/not/exist.csv", DefaultThresholds)
	if !errors.Is(err, errors.ErrCodeDatabase) {
		t.Errorf("Open() error = %v, want %s", err, errors.ErrCodeDatabase)
	}
}

func TestLoadCanceled(t *testing.T) {
	var b strings.Builder
	b.WriteString("PuzzleId,FEN,Moves,Rating\n")
	for i := 0; i < 2*checkEvery; i++ {
		b.WriteString("abcde,8/8/8/8/8/8/8/K6k w,e2e4 e7e5,1500\n")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, strings.NewReader(b.String()), "big", Thresholds{MaxRatingDeviation: 1000}); err == nil {
		t.Error("Load() with canceled context succeeded")
	}
}
