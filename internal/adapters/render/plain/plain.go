// Package plain formats draw outcomes for a terminal.
package plain

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/randomtoy/sensoji-go/internal/domain"
)

const (
	lineWidth      = 36
	explainHeading = "解曰"
	notesHeading   = "仙机"
)

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func center(s string) string {
	pad := (lineWidth - DisplayWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Write prints an outcome. Stalled and empty draws print their message,
// unparsed fortunes print verbatim.
func Write(w io.Writer, out domain.Outcome) error {
	var b strings.Builder
	switch {
	case !out.Drawn():
		b.WriteString(out.Message)
		b.WriteByte('\n')
	case out.Oracle == nil:
		b.WriteString(strings.TrimRight(string(out.Raw), "\n"))
		b.WriteByte('\n')
	default:
		writeOracle(&b, *out.Oracle)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeOracle(b *strings.Builder, o domain.ParsedOracle) {
	rule := strings.Repeat("─", lineWidth)

	fmt.Fprintln(b, center(o.Verdict))
	fmt.Fprintln(b, rule)
	for _, line := range o.PoemLines {
		fmt.Fprintln(b, center(line))
	}
	fmt.Fprintln(b, rule)

	if len(o.ExplanationBlocks) > 0 {
		fmt.Fprintf(b, "【%s】\n", explainHeading)
		for _, blk := range o.ExplanationBlocks {
			if blk.Subtitle != "" {
				fmt.Fprintf(b, "「%s」\n", blk.Subtitle)
			}
			fmt.Fprintf(b, "  %s\n", blk.Body)
		}
	}
	if len(o.Annotations) > 0 {
		fmt.Fprintf(b, "【%s】\n", notesHeading)
		for _, a := range o.Annotations {
			fmt.Fprintf(b, "  %s%s%s\n", a.Key, domain.AnnotationSeparator, a.Value)
		}
	}
}
