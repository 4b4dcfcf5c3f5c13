package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// AnnotationSeparator splits annotation lines into key and value.
	AnnotationSeparator = "："

	// DefaultCaptionMaxLen is the short-line threshold, in characters.
	DefaultCaptionMaxLen = 10

	headerLines = 5
)

// CaptionFunc decides whether a colon-free line is a caption for the
// explanation line that follows it.
type CaptionFunc func(line string, poem [4]string) bool

// OverlapCaption accepts short lines that a poem line contains, or that
// contain the first two characters of some poem line.
func OverlapCaption(maxLen int) CaptionFunc {
	return func(line string, poem [4]string) bool {
		if utf8.RuneCountInString(line) > maxLen {
			return false
		}
		for _, p := range poem {
			if strings.Contains(p, line) {
				return true
			}
			if head, ok := firstRunes(p, 2); ok && strings.Contains(line, head) {
				return true
			}
		}
		return false
	}
}

// PrefixCaption accepts short lines that start with the first two characters
// of some poem line.
func PrefixCaption(maxLen int) CaptionFunc {
	return func(line string, poem [4]string) bool {
		if utf8.RuneCountInString(line) > maxLen {
			return false
		}
		for _, p := range poem {
			if head, ok := firstRunes(p, 2); ok && strings.HasPrefix(line, head) {
				return true
			}
		}
		return false
	}
}

// LengthCaption accepts every line up to maxLen characters.
func LengthCaption(maxLen int) CaptionFunc {
	return func(line string, _ [4]string) bool {
		return utf8.RuneCountInString(line) <= maxLen
	}
}

func firstRunes(s string, n int) (string, bool) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], true
		}
		i++
	}
	return s, i == n
}

// Segmenter turns a RawText into a ParsedOracle.
type Segmenter struct {
	IsCaption CaptionFunc
}

// NewSegmenter returns a Segmenter using OverlapCaption with the default threshold.
func NewSegmenter() Segmenter {
	return Segmenter{IsCaption: OverlapCaption(DefaultCaptionMaxLen)}
}

// SplitLines normalizes literal "\n" escapes, splits on line breaks, trims
// every line and drops the empty ones.
func SplitLines(raw RawText) []string {
	text := strings.ReplaceAll(string(raw), `\n`, "\n")
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Parse classifies the lines after the verdict and poem. Each one becomes an
// annotation, a pending caption, or an explanation body, checked in that order.
// A caption with no body after it is dropped.
func (s Segmenter) Parse(raw RawText) (ParsedOracle, error) {
	lines := SplitLines(raw)
	if len(lines) < headerLines {
		return ParsedOracle{}, fmt.Errorf("%w: need %d non-empty lines, got %d",
			ErrInvalidOracleText, headerLines, len(lines))
	}

	isCaption := s.IsCaption
	if isCaption == nil {
		isCaption = OverlapCaption(DefaultCaptionMaxLen)
	}

	out := ParsedOracle{
		Verdict:           lines[0],
		Annotations:       []Annotation{},
		ExplanationBlocks: []ExplanationBlock{},
	}
	copy(out.PoemLines[:], lines[1:headerLines])

	var caption string
	for _, line := range lines[headerLines:] {
		if key, value, ok := strings.Cut(line, AnnotationSeparator); ok {
			out.Annotations = append(out.Annotations, Annotation{Key: key, Value: value})
			continue
		}
		if isCaption(line, out.PoemLines) {
			caption = line
			continue
		}
		out.ExplanationBlocks = append(out.ExplanationBlocks, ExplanationBlock{Subtitle: caption, Body: line})
		caption = ""
	}

	return out, nil
}
