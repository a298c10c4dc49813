package sink

import "golang.org/x/text/encoding/charmap"

// Encodable reports whether s can be set in the PDF core fonts without
// losing characters. Core fonts use Windows-1252; anything outside it is
// printed as '.'.
func Encodable(s string) bool {
	_, err := charmap.Windows1252.NewEncoder().String(s)
	return err == nil
}

// LossyTexts returns the header and footer texts of p that [Encodable]
// rejects.
func (p Page) LossyTexts() []string {
	var out []string
	for _, s := range []string{p.HeaderLeft, p.HeaderRight, p.Footer} {
		if s != "" && !Encodable(s) {
			out = append(out, s)
		}
	}
	return out
}
