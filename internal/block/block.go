// Package block splits a markdown document into blocks and classifies each
// block into one of six kinds.
//
// Classification scans lines explicitly and stops at the first line that
// breaks a rule. Anything that matches no rule is a Paragraph; malformed
// block syntax never produces an error.
package block

import (
	"strconv"
	"strings"
)

// Kind is the structural category of a block.
type Kind int

// Block kinds. Paragraph is the zero value and the fallback.
const (
	Paragraph Kind = iota
	Heading
	CodeFence
	Quote
	UnorderedList
	OrderedList
)

var kindNames = [...]string{
	Paragraph:     "paragraph",
	Heading:       "heading",
	CodeFence:     "code",
	Quote:         "quote",
	UnorderedList: "unordered_list",
	OrderedList:   "ordered_list",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Type is the classification of a block. Level is 1..6 for headings and 0
// for every other kind.
type Type struct {
	Kind  Kind
	Level int
}

// Syntax markers.
const (
	Fence          = "```"
	QuoteMarker    = ">"
	UnorderedMark  = "- "
	MaxHeadingRank = 6
)

// Split cuts a document into blocks on runs of blank lines. A blank line is
// empty or holds only whitespace. Blocks are trimmed and empty blocks are
// dropped.
func Split(document string) []string {
	document = strings.ReplaceAll(document, "\r\n", "\n")

	var (
		blocks  []string
		current []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		if b := strings.TrimSpace(strings.Join(current, "\n")); b != "" {
			blocks = append(blocks, b)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(document, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// Classify returns the type of a trimmed block. Rules are tried in order
// and the first match wins.
func Classify(text string) Type {
	lines := strings.Split(text, "\n")

	if len(lines) == 1 {
		if level, _, ok := ParseHeading(text); ok {
			return Type{Kind: Heading, Level: level}
		}
	}
	if IsFenced(text) {
		return Type{Kind: CodeFence}
	}
	if everyLine(lines, isQuoteLine) {
		return Type{Kind: Quote}
	}
	if everyLine(lines, isUnorderedLine) {
		return Type{Kind: UnorderedList}
	}
	if isOrderedList(lines) {
		return Type{Kind: OrderedList}
	}
	return Type{Kind: Paragraph}
}

// ParseHeading parses a heading line: 1 to 6 '#', one space, then a
// non-empty remainder. It returns the level and the remainder as written.
func ParseHeading(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingRank {
		return 0, "", false
	}
	rest := line[level:]
	if len(rest) < 2 || rest[0] != ' ' || strings.Contains(rest, "\n") {
		return 0, "", false
	}
	return level, rest[1:], true
}

// IsFenced reports whether text both opens and closes with a code fence.
// A lone fence cannot serve as both ends.
func IsFenced(text string) bool {
	return len(text) >= 2*len(Fence) &&
		strings.HasPrefix(text, Fence) &&
		strings.HasSuffix(text, Fence)
}

// ParseUnorderedItem returns the text after a "- " marker.
func ParseUnorderedItem(line string) (text string, ok bool) {
	rest, found := strings.CutPrefix(line, UnorderedMark)
	if !found || rest == "" {
		return "", false
	}
	return rest, true
}

// ParseOrderedItem parses "N. text" and returns N and text.
func ParseOrderedItem(line string) (n int, text string, ok bool) {
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, "", false
	}
	rest, found := strings.CutPrefix(line[digits:], ". ")
	if !found || rest == "" {
		return 0, "", false
	}
	n, err := strconv.Atoi(line[:digits])
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(line, QuoteMarker)
}

func isUnorderedLine(line string) bool {
	_, ok := ParseUnorderedItem(line)
	return ok
}

// isOrderedList requires every line to be an item and the numbers to run
// 1, 2, 3, ... without gaps.
func isOrderedList(lines []string) bool {
	for i, line := range lines {
		n, _, ok := ParseOrderedItem(line)
		if !ok || n != i+1 {
			return false
		}
	}
	return len(lines) > 0
}

func everyLine(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if !match(line) {
			return false
		}
	}
	return len(lines) > 0
}
