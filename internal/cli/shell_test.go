package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "  \t ", nil},
		{"words", "add-to s1 abcde", []string{"add-to", "s1", "abcde"}},
		{"extra spaces", "  list   stores ", []string{"list", "stores"}},
		{"double quotes", `new "mate in 2"`, []string{"new", "mate in 2"}},
		{"single quotes", `add-to s1 '8/8/8/8/8/8/8/K6k w - - 0 1'`, []string{"add-to", "s1", "8/8/8/8/8/8/8/K6k w - - 0 1"}},
		{"empty quotes", `header s1 --footer ""`, []string{"header", "s1", "--footer", ""}},
		{"escaped space", `new mate\ in\ 2`, []string{"new", "mate in 2"}},
		{"quote inside word", `name s1 Tom"'"s`, []string{"name", "s1", "Tom's"}},
		{"backslash in single quotes", `x 'a\b'`, []string{"x", `a\b`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			if err != nil {
				t.Fatalf("splitArgs(%q) error: %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("splitArgs(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestSplitArgsUnterminated(t *testing.T) {
	for _, line := range []string{`new "open`, `new 'open`, `new trailing\`} {
		if _, err := splitArgs(line); err == nil {
			t.Errorf("splitArgs(%q) should fail", line)
		}
	}
}
