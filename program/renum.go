package program

import (
	"strconv"
	"strings"

	"github.com/google/btree"
	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/lexer"
	"github.com/navionguy/linebasic/token"
)

// Renumber gives the lines new numbers start, start+step, ...  and fixes
// up every line number reference that follows THEN, GOTO, GOSUB or RESTORE
// (including ON ... GOTO lists). References to lines that don't exist are
// left alone, as is everything else in the text.
func (s *Store) Renumber(start, step int) error {
	if start < 0 || step <= 0 {
		return berrors.New(berrors.IllegalFuncCallErr, "")
	}

	remap := map[int]int{}
	next := start
	for _, l := range s.Lines() {
		remap[l.Number] = next
		next += step
	}

	code := btree.New(4)
	for _, l := range s.Lines() {
		code.ReplaceOrInsert(Line{Number: remap[l.Number], Text: RewriteTargets(l.Text, remap)})
	}
	s.code = code
	s.version++

	return nil
}

// RewriteTargets replaces line number references in text using remap
func RewriteTargets(text string, remap map[int]int) string {
	var sb strings.Builder
	copied := 0
	target := false
	inList := false

	l := lexer.New(text)
	for tok := l.Current(); tok.Type != token.EOF; tok = l.Current() {
		switch tok.Type {
		case token.THEN, token.GOTO, token.GOSUB, token.RESTORE:
			target = true
			inList = false
		case token.NUMBER:
			if target {
				n := int(tok.Number)
				if nw, ok := remap[n]; ok && float64(n) == tok.Number {
					sb.WriteString(text[copied:tok.Start])
					sb.WriteString(strconv.Itoa(nw))
					copied = tok.End
				}
				inList = true
			}
			target = false
		case token.COMMA:
			target = inList
			inList = false
		default:
			target = false
			inList = false
		}
		l.Advance()
	}
	sb.WriteString(text[copied:])

	return sb.String()
}
