// Package sink draws puzzle sheet pages.
//
// # Overview
//
// A sink turns diagrams plus header and footer text into one finished A4
// page. The pipeline for one page is fixed:
//
//  1. resolve the grid variant ([layout.Select]) and reject unknown ones
//  2. check every diagram that will be placed
//  3. draw the header text and rule
//  4. place each diagram with its side-to-move marker ([PlaceDiagram])
//  5. draw the footer rule and text when a footer is given
//  6. finalize the document
//
// [Compose] runs steps 1-5 against any [Canvas]. [RenderPDF] runs the whole
// pipeline on a [PDFDocument] and returns the bytes; [WritePDF] additionally
// writes them atomically so a failed page never leaves a file behind.
//
//	err := sink.WritePDF("sheet.pdf", sink.Page{
//	    Diagrams:    diagrams,
//	    HeaderLeft:  "White",
//	    HeaderRight: "Black",
//	})
//
// # Determinism
//
// PDF output is byte-for-byte reproducible: creation and modification
// dates are fixed, the catalog is written in sorted order and the producer
// string does not carry a version.
//
// # Coordinates
//
// [Canvas] uses PDF points with the origin at the bottom-left corner, the
// same space as [layout.Plan]. [PDFDocument] converts to fpdf's top-left
// origin internally.
//
// [layout.Select]: github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout.Select
// [layout.Plan]: github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout.Plan
package sink
