package vfs

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Counts is the result of a word count.
type Counts struct {
	Lines      int
	Words      int
	Characters int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d lines, %d words, %d characters", c.Lines, c.Words, c.Characters)
}

// Count counts the lines, whitespace-delimited words and characters (runes)
// of text. The ASCII separators 0x1c-0x1f split words as well as lines.
func Count(text string) Counts {
	return Counts{
		Lines:      len(SplitLines(text)),
		Words:      len(strings.FieldsFunc(text, isWordBreak)),
		Characters: utf8.RuneCountInString(text),
	}
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// Reverse returns the lines of text in reverse order joined by "\n".
func Reverse(text string) string {
	lines := SplitLines(text)
	slices.Reverse(lines)
	return strings.Join(lines, "\n")
}

// SplitLines splits text at line boundaries and drops the boundaries. A
// trailing boundary does not start an extra empty line, and "\r\n" counts as a
// single boundary. Besides "\n" and "\r" the vertical tab, form feed, the
// ASCII file/group/record separators, NEL, and the Unicode line and paragraph
// separators also end a line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
