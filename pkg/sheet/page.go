package sheet

import (
	"context"
	"time"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/observability"
	"github.com/matzehuels/puzzlesheet/pkg/render/diagram"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/sink"
)

// PageOptions overrides what is printed around the diagrams. nil fields
// fall back to the sheet's own texts.
type PageOptions struct {
	Layout      layout.Variant
	LeftHeader  *string
	RightHeader *string
	Footer      *string
	Diagram     []diagram.Option
	PDF         []sink.PDFOption

	// HeaderFontSize replaces the default header size when positive.
	HeaderFontSize float64
}

// Page renders the sheet's diagrams and assembles the page description.
func (s *Sheet) Page(ctx context.Context, opts PageOptions) (sink.Page, error) {
	diagrams, err := diagram.Build(ctx, s.FENs(), opts.Diagram...)
	if err != nil {
		return sink.Page{}, err
	}
	page := sink.Page{
		Diagrams:    diagrams,
		HeaderLeft:  pick(opts.LeftHeader, s.LeftHeader),
		HeaderRight: pick(opts.RightHeader, s.RightHeader),
		Footer:      pick(opts.Footer, s.Footer),
		Layout:      opts.Layout,
	}
	if opts.HeaderFontSize > 0 {
		g := layout.NewGeometry(opts.HeaderFontSize)
		page.Geometry = &g
	}
	return page, nil
}

// Print renders the sheet as a one-page PDF at path. The file is replaced
// atomically; a failed print leaves any previous file in place.
func (s *Sheet) Print(ctx context.Context, path string, opts PageOptions) (plan layout.Plan, err error) {
	start := time.Now()
	observability.Print().OnComposeStart(ctx, s.Name, s.Len())
	defer func() {
		observability.Print().OnComposeComplete(ctx, s.Name, plan.Variant.String(), plan.Dropped, time.Since(start), err)
	}()

	page, err := s.Page(ctx, opts)
	if err != nil {
		return layout.Plan{}, err
	}
	for _, t := range page.LossyTexts() {
		observability.Print().OnLossyText(ctx, s.Name, t)
	}
	data, plan, err := sink.ComposePDF(page, append([]sink.PDFOption{sink.WithTitle(s.Name)}, opts.PDF...)...)
	if err != nil {
		return plan, err
	}
	if err := fsutil.WriteFile(path, data, 0o644); err != nil {
		return plan, errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", path)
	}
	return plan, nil
}

func pick(override *string, fallback string) string {
	if override != nil {
		return *override
	}
	return fallback
}
