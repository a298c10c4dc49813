package diagram

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	svg "github.com/ajstarks/svgo"
	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/puzzlesheet/pkg/position"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/sink"
	"github.com/matzehuels/puzzlesheet/pkg/render/vector"
)

// DefaultSize is the side length of a board diagram in SVG user units.
const DefaultSize = 480

// Orientation decides which side is drawn at the bottom.
type Orientation int

const (
	// SideToMove puts the player to move at the bottom.
	SideToMove Orientation = iota
	WhiteBottom
	BlackBottom
)

// Option configures board rendering.
type Option func(*renderer)

type renderer struct {
	size        int
	colors      Colors
	coordinates bool
	orientation Orientation
}

// WithSize sets the diagram side length.
func WithSize(px int) Option { return func(r *renderer) { r.size = px } }

// WithColors sets the colour scheme.
func WithColors(c Colors) Option { return func(r *renderer) { r.colors = c } }

// WithoutCoordinates drops the file and rank labels and their margin.
func WithoutCoordinates() Option { return func(r *renderer) { r.coordinates = false } }

// WithOrientation forces the board orientation.
func WithOrientation(o Orientation) Option { return func(r *renderer) { r.orientation = o } }

func newRenderer(opts ...Option) renderer {
	r := renderer{size: DefaultSize, colors: DefaultColors(), coordinates: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.size < 64 {
		r.size = 64
	}
	return r
}

// Board renders the position fen as an SVG document.
func Board(fen string, opts ...Option) ([]byte, error) {
	pos, err := position.Parse(fen)
	if err != nil {
		return nil, err
	}
	r := newRenderer(opts...)
	return r.board(pos), nil
}

func (r renderer) board(pos *chess.Position) []byte {
	margin := 0
	if r.coordinates {
		margin = r.size / 24
	}
	sq := (r.size - 2*margin) / 8
	total := 8*sq + 2*margin

	flipped := r.orientation == BlackBottom ||
		(r.orientation == SideToMove && pos.Turn() == chess.Black)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(total, total, 0, 0, total, total)
	canvas.Rect(0, 0, total, total, "fill:"+r.colors.Margin+";stroke:"+r.colors.OuterBorder+";stroke-width:2")
	canvas.Rect(margin-1, margin-1, 8*sq+2, 8*sq+2, "fill:"+r.colors.InnerBorder)

	board := pos.Board()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			file, rank := col, 7-row
			if flipped {
				file, rank = 7-col, row
			}
			x, y := margin+col*sq, margin+row*sq

			fill := r.colors.SquareLight
			if (file+rank)%2 == 0 {
				fill = r.colors.SquareDark
			}
			canvas.Rect(x, y, sq, sq, "fill:"+fill)

			if p := board.Piece(chess.NewSquare(chess.File(file), chess.Rank(rank))); p != chess.NoPiece {
				drawPiece(canvas, p, x, y, sq)
			}
		}
	}

	if r.coordinates {
		r.drawCoordinates(canvas, margin, sq, total, flipped)
	}
	canvas.End()
	return buf.Bytes()
}

func (r renderer) drawCoordinates(canvas *svg.SVG, margin, sq, total int, flipped bool) {
	fontSize := margin * 4 / 5
	style := fmt.Sprintf("font-family:Helvetica;font-size:%dpx;fill:%s;text-anchor:middle", fontSize, r.colors.Coord)
	baseline := total - margin/2 + fontSize*7/20

	for i := 0; i < 8; i++ {
		file, rank := i, 7-i
		if flipped {
			file, rank = 7-i, i
		}
		canvas.Text(margin+i*sq+sq/2, baseline, string(rune('a'+file)), style)
		canvas.Text(margin/2, margin+i*sq+sq/2+fontSize*7/20, fmt.Sprint(rank+1), style)
	}
}

// Diagram renders fen and parses it into a page-ready diagram.
func Diagram(fen string, opts ...Option) (sink.Diagram, error) {
	pos, err := position.Parse(fen)
	if err != nil {
		return sink.Diagram{}, err
	}
	g, err := vector.Parse(newRenderer(opts...).board(pos))
	if err != nil {
		return sink.Diagram{}, err
	}
	return sink.Diagram{Graphic: g, SecondToMove: pos.Turn() == chess.Black}, nil
}

// Build renders every position concurrently. The result keeps the input
// order; the first failure cancels the remaining work.
func Build(ctx context.Context, fens []string, opts ...Option) ([]sink.Diagram, error) {
	out := make([]sink.Diagram, len(fens))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, fen := range fens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := Diagram(fen, opts...)
			if err != nil {
				return fmt.Errorf("diagram %d: %w", i+1, err)
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
