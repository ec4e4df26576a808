// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package blocks finds named, brace-delimited declarations in source text.
//
// The scanner only counts braces. Braces inside string literals or comments
// are counted like any other, so a body containing an unbalanced brace in a
// string is cut short or swallowed.
package blocks

import (
	"iter"
	"regexp"
	"slices"
)

// Block is one named declaration.
type Block struct {
	// Name is capture group 1 of the opening pattern.
	Name string
	// Body is the text between the opening brace and its matching close.
	Body string
	// Start is the offset of the opening match; End is one past the closing brace.
	Start int
	End   int
}

// Extract yields every block whose opening matches pattern, left to right.
// The pattern must match through the opening "{" and capture the name in
// group 1. Blocks whose closing brace is never found are skipped.
//
// Matching resumes right after each opening, so an opening nested inside an
// earlier body is reported as well. Each search starts at the previous
// opening's end, which anchors such as ^ treat as the start of text. Openings are matched one at a time as the
// sequence is consumed, and brace pairs are resolved in a single pass over
// text, so the cost stays linear however many blocks are left unterminated.
func Extract(text string, pattern *regexp.Regexp) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var closers []int
		for pos := 0; pos <= len(text); {
			loc := pattern.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			for i := range loc {
				if loc[i] >= 0 {
					loc[i] += pos
				}
			}
			pos = max(loc[1], loc[0]+1)

			bodyStart := loc[1]
			if bodyStart == 0 || text[bodyStart-1] != '{' {
				continue
			}
			if closers == nil {
				closers = pairBraces(text)
			}
			closeAt := closers[bodyStart-1]
			if closeAt < 0 {
				continue
			}
			var name string
			if len(loc) >= 4 && loc[2] >= 0 {
				name = text[loc[2]:loc[3]]
			}
			b := Block{
				Name:  name,
				Body:  text[bodyStart:closeAt],
				Start: loc[0],
				End:   closeAt + 1,
			}
			if !yield(b) {
				return
			}
		}
	}
}

// Collect returns all blocks Extract yields.
func Collect(text string, pattern *regexp.Regexp) []Block {
	return slices.Collect(Extract(text, pattern))
}

// pairBraces maps the offset of every "{" in text to the offset of the "}"
// that closes it, or -1 when it is never closed. Other offsets hold -1.
func pairBraces(text string) []int {
	closers := make([]int, len(text))
	var open []int
	for i := 0; i < len(text); i++ {
		closers[i] = -1
		switch text[i] {
		case '{':
			open = append(open, i)
		case '}':
			if n := len(open); n > 0 {
				closers[open[n-1]] = i
				open = open[:n-1]
			}
		}
	}
	return closers
}
