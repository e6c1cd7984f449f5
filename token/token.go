package token

type TokenType string

// MaxText is the longest literal a token will carry, longer text is truncated
const MaxText = 127

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, A$
	NUMBER = "NUMBER" // 10, 3.25, .5
	STRING = "STRING" // "A string literal"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	CARAT    = "^"
	BSLASH   = "\\"

	LT     = "<"
	GT     = ">"
	NOT_EQ = "<>"
	GTE    = ">="
	LTE    = "<="

	// Delimiters
	HASH      = "#"
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	QUESTION  = "?"
	LPAREN    = "("
	RPAREN    = ")"

	// Keywords
	AND      = "AND"
	APPEND   = "APPEND"
	ARRAYS   = "ARRAYS"
	AS       = "AS"
	BYE      = "BYE"
	CLOSE    = "CLOSE"
	DATA     = "DATA"
	DIM      = "DIM"
	DUMP     = "DUMP"
	END      = "END"
	FILES    = "FILES"
	FOR      = "FOR"
	GOSUB    = "GOSUB"
	GOTO     = "GOTO"
	HELP     = "HELP"
	IF       = "IF"
	INPUT    = "INPUT"
	LET      = "LET"
	LINE     = "LINE"
	LIST     = "LIST"
	LOAD     = "LOAD"
	LOADVARS = "LOADVARS"
	NEW      = "NEW"
	NEXT     = "NEXT"
	NOT      = "NOT"
	OFF      = "OFF"
	ON       = "ON"
	OPEN     = "OPEN"
	OR       = "OR"
	OUTPUT   = "OUTPUT"
	PRINT    = "PRINT"
	QUIT     = "QUIT"
	READ     = "READ"
	REM      = "REM"
	RENUM    = "RENUM"
	RESTORE  = "RESTORE"
	RETURN   = "RETURN"
	RUN      = "RUN"
	SAVE     = "SAVE"
	SAVEVARS = "SAVEVARS"
	STACK    = "STACK"
	STEP     = "STEP"
	STOP     = "STOP"
	THEN     = "THEN"
	TO       = "TO"
	TRACE    = "TRACE"
	VARS     = "VARS"
	XOR      = "XOR"
)

// Token is a single lexical item, Start and End give its byte span in the source
type Token struct {
	Type    TokenType
	Literal string
	Number  float64
	Start   int
	End     int
}

var keywords = map[string]TokenType{
	"AND":      AND,
	"APPEND":   APPEND,
	"ARRAYS":   ARRAYS,
	"AS":       AS,
	"BYE":      BYE,
	"CLOSE":    CLOSE,
	"DATA":     DATA,
	"DIM":      DIM,
	"DUMP":     DUMP,
	"END":      END,
	"FILES":    FILES,
	"FOR":      FOR,
	"GOSUB":    GOSUB,
	"GOTO":     GOTO,
	"HELP":     HELP,
	"IF":       IF,
	"INPUT":    INPUT,
	"LET":      LET,
	"LINE":     LINE,
	"LIST":     LIST,
	"LOAD":     LOAD,
	"LOADVARS": LOADVARS,
	"NEW":      NEW,
	"NEXT":     NEXT,
	"NOT":      NOT,
	"OFF":      OFF,
	"ON":       ON,
	"OPEN":     OPEN,
	"OR":       OR,
	"OUTPUT":   OUTPUT,
	"PRINT":    PRINT,
	"QUIT":     QUIT,
	"READ":     READ,
	"REM":      REM,
	"RENUM":    RENUM,
	"RESTORE":  RESTORE,
	"RETURN":   RETURN,
	"RUN":      RUN,
	"SAVE":     SAVE,
	"SAVEVARS": SAVEVARS,
	"STACK":    STACK,
	"STEP":     STEP,
	"STOP":     STOP,
	"THEN":     THEN,
	"TO":       TO,
	"TRACE":    TRACE,
	"VARS":     VARS,
	"XOR":      XOR,
}

// Upper folds ASCII letters to upper case and leaves every other byte alone.
// Identifiers are matched this way no matter what locale the host runs in.
func Upper(s string) string {
	for i := 0; i < len(s); i++ {
		if 'a' <= s[i] && s[i] <= 'z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'a' <= b[j] && b[j] <= 'z' {
					b[j] -= 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// LookupIdent returns the keyword type for ident, or IDENT
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[Upper(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether ident names a reserved word
func IsKeyword(ident string) bool {
	_, ok := keywords[Upper(ident)]
	return ok
}
