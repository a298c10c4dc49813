package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/observability"
)

// fixtureCSV holds six puzzles; 00sJ9 and 00lowP fail the default quality
// thresholds.
const fixtureCSV = `PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl,OpeningTags
00sHx,q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B1PP1b2/B5PP/5K2 b k - 0 17,e8d7 a2e6 d7d8 f7f8,1760,80,83,72,mate mateIn2 middlegame short,https://lichess.org/yyznGmXs/black#34,Italian_Game Italian_Game_Classical_Variation
00sJ9,r3r1k1/p4ppp/2p2n2/1p6/3P1qb1/2NQR3/PPB2PP1/R1B3K1 w - - 5 18,e3g3 e8e1 g1h2 e1c1 a1c1 f4h6 h2g1 h6c1,2671,105,87,325,advantage attraction fork long sacrifice veryLong,https://lichess.org/gyFeQsOE#35,French_Defense French_Defense_Exchange_Variation
00sO1,1k1r4/pp3pp1/2p1p3/4b3/P3n1P1/8/KPP2PP1/3rB2R b - - 1 25,d8d4 b2b4 e5d4 h1d1,1112,75,83,519,crushing endgame fork short,https://lichess.org/b0h1fLoK/black#50,
00xyz,6k1/5ppp/8/8/8/8/5PPP/3R2K1 b - - 0 1,g8f8 d1d8,900,70,95,1200,mate mateIn1 backRankMate endgame oneMove,https://lichess.org/abcdefgh#1,
00lowP,6k1/5ppp/8/8/8/8/5PPP/3R2K1 b - - 0 1,g8f8 d1d8,950,70,5,30,mate mateIn1 endgame oneMove,https://lichess.org/abcdefgh#2,
01fork,r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4,h5f7 e8f7 c4d5 f7e8 d5c6,1450,76,90,800,fork middlegame short,https://lichess.org/xyz#7,Italian_Game Sicilian_Defense_Najdorf_Variation
`

const loneKings = "8/8/8/8/8/8/8/K6k w - - 0 1"

// testEnv is a data directory, config file and puzzle database shared by
// the psg invocations of one test.
type testEnv struct {
	t       *testing.T
	dataDir string
	config  string
	db      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	db := filepath.Join(root, "puzzles.csv")
	if err := os.WriteFile(db, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(observability.Reset)
	return &testEnv{
		t:       t,
		dataDir: filepath.Join(root, "data"),
		config:  filepath.Join(root, "config.toml"),
		db:      db,
	}
}

// run executes one psg command in a fresh CLI, as a separate process
// would, and returns what it printed.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	c := New(io.Discard, LogInfo)
	return e.runWith(c, args...)
}

func (e *testEnv) runWith(c *CLI, args ...string) (string, error) {
	e.t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	root := c.RootCommand()
	root.SetArgs(append([]string{
		"--config", e.config, "--data-dir", e.dataDir, "--db", e.db, "--no-cache",
	}, args...))
	err := root.ExecuteContext(e.t.Context())
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return buf.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("psg %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (e *testEnv) showSheet(ref string) sheetView {
	e.t.Helper()
	out := e.mustRun("show", ref, "--format", "json")
	var v sheetView
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		e.t.Fatalf("show %s: decode: %v\n%s", ref, err, out)
	}
	return v
}

func TestSheetLifecycle(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("new", "Week 1", "--left-header", "Name:")
	env.mustRun("add-to", "s1", "00sHx", "00xyz", loneKings)

	v := env.showSheet("Week 1")
	var got []string
	for _, e := range v.Elements {
		got = append(got, e.PuzzleID+"/"+e.ToMove)
	}
	want := []string{"00sHx/white", "00xyz/white", "/white"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
	if v.LeftHeader != "Name:" {
		t.Errorf("LeftHeader = %q, want %q", v.LeftHeader, "Name:")
	}

	env.mustRun("reorder", "s1", "0", "2")
	env.mustRun("remove", "s1", "00xyz")
	env.mustRun("name", "s1", "Week 2")
	env.mustRun("header", "s1", "--right", "Date:", "--footer", "Good luck")

	v = env.showSheet("Week 2")
	if len(v.Elements) != 2 || v.Elements[0].PuzzleID != "" || v.Elements[1].PuzzleID != "00sHx" {
		t.Errorf("elements after reorder/remove = %+v", v.Elements)
	}
	if v.LeftHeader != "Name:" || v.RightHeader != "Date:" || v.Footer != "Good luck" {
		t.Errorf("texts = %q %q %q", v.LeftHeader, v.RightHeader, v.Footer)
	}

	env.mustRun("copy", "Week 2", "Week 2b")
	if _, err := env.run("new", "Week 2b"); !errors.Is(err, errors.ErrCodeAlreadyExists) {
		t.Errorf("new with a taken name: err = %v, want %s", err, errors.ErrCodeAlreadyExists)
	}

	env.mustRun("delete", "s2")
	if _, err := env.run("show", "s2"); err == nil {
		t.Error("show after delete should fail")
	}
}

func TestAddToIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("new", "full")

	args := []string{"add-to", "s1"}
	for range 11 {
		args = append(args, loneKings)
	}
	env.mustRun(args...)

	_, err := env.run("add-to", "s1", loneKings, "00sO1")
	if !errors.Is(err, errors.ErrCodeSheetFull) {
		t.Fatalf("add-to beyond capacity: err = %v, want %s", err, errors.ErrCodeSheetFull)
	}
	if n := len(env.showSheet("s1").Elements); n != 11 {
		t.Errorf("elements after failed add = %d, want 11", n)
	}

	if _, err := env.run("add-to", "s1", "not a position"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("add-to with garbage: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := env.run("add-to", "s1", "zzzzz"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("add-to with unknown id: err = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestPrintCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("new", "Mates")
	env.mustRun("add-to", "Mates", "00sHx", "00xyz")

	out := filepath.Join(t.TempDir(), "pdf", "mates.pdf")
	got := env.mustRun("print", "Mates", "-o", out, "--verify", "--footer", "page 1")
	if !strings.Contains(got, "6-cell") {
		t.Errorf("print output %q should name the 6-cell layout", got)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("print did not write %s: %v", out, err)
	}

	got = env.mustRun("print", "Mates", "-o", out, "--layout", "12")
	if !strings.Contains(got, "12-cell") {
		t.Errorf("print --layout 12 output %q should name the 12-cell layout", got)
	}

	if _, err := env.run("print", "Mates", "--layout", "9"); !errors.Is(err, errors.ErrCodeUnknownLayout) {
		t.Errorf("print --layout 9: err = %v, want %s", err, errors.ErrCodeUnknownLayout)
	}

	env.mustRun("print", "Mates", "-o", out, "--layout", "12", "--header-size", "48", "--uncompressed", "--right-header", "Week 3")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("(Week 3) Tj")) {
		t.Error("print --uncompressed should leave the header text readable in the page stream")
	}
	if _, err := env.run("print", "Mates", "-o", out, "--header-size", "800"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("print --header-size 800: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestStoreCommands(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("filter", "--name", "forks", "--any-theme", "fork")
	env.mustRun("mate", "1")
	env.mustRun("union", "forks", "mate in 1", "--name", "mixed bag")
	env.mustRun("sample", "p3", "2", "homework")

	if n := len(env.showSheet("homework").Elements); n != 2 {
		t.Errorf("sampled elements = %d, want 2", n)
	}

	out := env.mustRun("show", "p3", "--format", "json")
	var st storeView
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("decode store: %v", err)
	}
	if st.Puzzles != 3 {
		t.Errorf("union puzzles = %d, want 3", st.Puzzles)
	}
	if diff := cmp.Diff([]string{"p1", "p2"}, st.Parents); diff != "" {
		t.Errorf("union parents mismatch (-want +got):\n%s", diff)
	}

	dot := env.mustRun("lineage", "--dot")
	for _, edge := range []string{`"p0" -> "p1";`, `"p1" -> "p3";`, `"p2" -> "p3";`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("lineage should contain %s:\n%s", edge, dot)
		}
	}

	if _, err := env.run("sample", "p2", "5", "homework"); err == nil {
		t.Error("sampling more puzzles than the store holds should fail")
	}
	if _, err := env.run("delete", "p0"); !errors.Is(err, errors.ErrCodeProtected) {
		t.Errorf("delete p0: err = %v, want %s", err, errors.ErrCodeProtected)
	}
	if _, err := env.run("filter", "--name", "bad", "--any-theme", "nosuchtheme"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("filter with unknown theme: err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestAutosaveOff(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("config", "set", "autosave", "off")

	env.mustRun("new", "draft")
	if out := env.mustRun("list"); !strings.Contains(out, "No sheets") {
		t.Errorf("unsaved sheet should not survive the process:\n%s", out)
	}

	c := New(io.Discard, LogInfo)
	if _, err := env.runWith(c, "new", "draft"); err != nil {
		t.Fatal(err)
	}
	if !c.ws.dirty["s1"] {
		t.Fatal("new with autosave off should mark the sheet dirty")
	}
	if _, err := env.runWith(c, "save"); err != nil {
		t.Fatal(err)
	}
	if out := env.mustRun("list"); !strings.Contains(out, "draft") {
		t.Errorf("saved sheet should be listed:\n%s", out)
	}
}

func TestShellSession(t *testing.T) {
	env := newTestEnv(t)

	c := New(io.Discard, LogInfo)
	if _, err := env.runWith(c, "list"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	in := strings.NewReader(strings.Join([]string{
		`new "shell sheet"`,
		`add-to "shell sheet" 00sO1 '` + loneKings + `'`,
		`bogus`,
		`add-to "shell sheet" "unterminated`,
		`exit`,
		`new never`,
	}, "\n"))
	if err := c.runShell(t.Context(), in); err != nil {
		t.Fatalf("runShell() error: %v", err)
	}

	_, s, err := c.ws.sheet("shell sheet")
	if err != nil {
		t.Fatalf("sheet created in the shell: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("shell sheet elements = %d, want 2", s.Len())
	}
	if _, _, err := c.ws.sheet("never"); err == nil {
		t.Error("commands after exit should not run")
	}
	if !strings.Contains(buf.String(), "unknown command") {
		t.Errorf("shell output should report the unknown command:\n%s", buf.String())
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"Mate in 2", "mate-in-2"},
		{"  Week #3: forks!  ", "week-3-forks"},
		{"???", "sheet"},
	}
	for _, tt := range tests {
		if got := slug(tt.name); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
