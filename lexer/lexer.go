package lexer

import (
	"strconv"
	"strings"

	"github.com/navionguy/linebasic/token"
)

// TokenSource is what the evaluator consumes, a cursor over a token stream
type TokenSource interface {
	Current() token.Token // the token under the cursor
	Advance()             // move to the next token
	Peek() token.Token    // the token after Current, without moving
}

//Lexer a lexical analyzer instance
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	cur          token.Token
	next         *token.Token // one token of lookahead, once asked for
}

//New create a new lexer object positioned on the first token
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	l.cur = l.NextToken()
	return l
}

// Current returns the token under the cursor
func (l *Lexer) Current() token.Token {
	return l.cur
}

// Advance moves the cursor forward one token
func (l *Lexer) Advance() {
	if l.next != nil {
		l.cur = *l.next
		l.next = nil
		return
	}
	l.cur = l.NextToken()
}

// Peek lets you look at the token following Current
func (l *Lexer) Peek() token.Token {
	if l.next == nil {
		t := l.NextToken()
		l.next = &t
	}
	return *l.next
}

//NextToken scans for the next token
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	for {
		l.skipWhitespace()
		start := l.position

		switch l.ch {
		case 0:
			if l.position >= len(l.input) {
				return token.Token{Type: token.EOF, Literal: "", Start: len(l.input), End: len(l.input)}
			}
			// a stray NUL in the text is skipped like any unknown byte
			l.readChar()
			continue
		case '<':
			switch l.peekChar() {
			case '>':
				l.readChar()
				tok = token.Token{Type: token.NOT_EQ, Literal: "<>"}
			case '=':
				l.readChar()
				tok = token.Token{Type: token.LTE, Literal: "<="}
			default:
				tok = newToken(token.LT, l.ch)
			}
		case '>':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.GTE, Literal: ">="}
			} else {
				tok = newToken(token.GT, l.ch)
			}
		case '"':
			tok = token.Token{Type: token.STRING, Literal: capText(l.readString())}
			tok.Start = start
			tok.End = l.position
			return tok
		case '#':
			tok = newToken(token.HASH, l.ch)
		case '=':
			tok = newToken(token.ASSIGN, l.ch)
		case '+':
			tok = newToken(token.PLUS, l.ch)
		case '-':
			tok = newToken(token.MINUS, l.ch)
		case '*':
			tok = newToken(token.ASTERISK, l.ch)
		case '/':
			tok = newToken(token.SLASH, l.ch)
		case '^':
			tok = newToken(token.CARAT, l.ch)
		case '(':
			tok = newToken(token.LPAREN, l.ch)
		case ')':
			tok = newToken(token.RPAREN, l.ch)
		case ',':
			tok = newToken(token.COMMA, l.ch)
		case ';':
			tok = newToken(token.SEMICOLON, l.ch)
		case ':':
			tok = newToken(token.COLON, l.ch)
		case '\\':
			tok = newToken(token.BSLASH, l.ch)
		case '?':
			tok = newToken(token.QUESTION, l.ch)
		default:
			if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
				tok = l.readNumber()
				tok.Start = start
				tok.End = l.position
				return tok
			}
			if isLetter(l.ch) {
				lit := l.readIdentifier()
				tok = token.Token{Type: token.LookupIdent(lit), Literal: capText(lit)}
				if tok.Type == token.REM {
					// a remark eats whatever is left
					l.position = len(l.input)
					l.readPosition = len(l.input)
					l.ch = 0
				}
				tok.Start = start
				tok.End = start + len(lit)
				return tok
			}
			// nothing I understand, skip it
			l.readChar()
			continue
		}

		l.readChar()
		tok.Start = start
		tok.End = l.position
		return tok
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '$' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// reads up to the closing quote, a missing one is forgiven
func (l *Lexer) readString() string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' {
			str := l.input[position:l.position]
			l.readChar()
			return str
		}
		if l.position >= len(l.input) {
			return l.input[position:]
		}
	}
}

// reads the whole run of digits and points, only the part before
// a second point counts toward the value
func (l *Lexer) readNumber() token.Token {
	position := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}

	lit := l.input[position:l.position]
	num := lit
	if dot := strings.IndexByte(lit, '.'); dot >= 0 {
		if again := strings.IndexByte(lit[dot+1:], '.'); again >= 0 {
			num = lit[:dot+1+again]
		}
	}
	val, _ := strconv.ParseFloat(num, 64)
	return token.Token{Type: token.NUMBER, Literal: capText(lit), Number: val}
}

//peekChar - take a look at, but don't consume the next character
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}

	return l.input[l.readPosition]
}

func newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

func capText(s string) string {
	if len(s) > token.MaxText {
		return s[:token.MaxText]
	}
	return s
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// SplitStatements breaks a line into its sub-statements. A ':' or '\'
// outside of quotes ends a statement, and a REM swallows the rest of the line.
func SplitStatements(line string) []string {
	var stmts []string
	inQuote := false
	start := 0

	add := func(s string) bool {
		s = strings.TrimSpace(s)
		if len(s) == 0 {
			return false
		}
		stmts = append(stmts, s)
		return isRemark(s)
	}

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ':', '\\':
			if inQuote {
				continue
			}
			if isRemark(strings.TrimSpace(line[start:i])) {
				add(line[start:])
				return stmts
			}
			add(line[start:i])
			start = i + 1
		}
	}
	add(line[start:])

	return stmts
}

func isRemark(s string) bool {
	if len(s) < 3 || token.Upper(s[:3]) != "REM" {
		return false
	}
	return len(s) == 3 || !(isLetter(s[3]) || isDigit(s[3]) || s[3] == '$')
}
