/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package classloader

import "strings"

// input walks a class file line by line, stripping `//` comments and
// blank lines, and tracks the 1-based line number of the last line handed
// out so errors can report where they occurred.
type input struct {
	lines  []string
	pos    int
	lineNo int
}

func newInput(src string) *input {
	return &input{lines: strings.Split(src, "\n")}
}

// nextLine returns the next non-blank, comment-stripped, trimmed line, or
// ok=false when the input is exhausted.
func (in *input) nextLine() (string, bool) {
	for in.pos < len(in.lines) {
		raw := in.lines[in.pos]
		in.pos++
		in.lineNo = in.pos

		if i := strings.Index(raw, "//"); i >= 0 {
			raw = raw[:i]
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

// tokens splits one line into whitespace-separated tokens with a cursor.
type tokens struct {
	toks []string
	pos  int
}

func splitTokens(line string) *tokens {
	return &tokens{toks: strings.Fields(line)}
}

func (t *tokens) next() (string, bool) {
	if t.pos >= len(t.toks) {
		return "", false
	}
	tok := t.toks[t.pos]
	t.pos++
	return tok, true
}

// hasMore reports whether any tokens remain unconsumed.
func (t *tokens) hasMore() bool {
	return t.pos < len(t.toks)
}
