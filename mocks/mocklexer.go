package mocks

import "github.com/navionguy/linebasic/token"

// MockLexer is a token source fed by hand
type MockLexer struct {
	tokens []token.Token
}

// add a token to the array
func (ml *MockLexer) AddToken(token token.Token) {
	ml.tokens = append(ml.tokens, token)
}

// Current returns the token under the cursor, EOF once they run out
func (ml *MockLexer) Current() token.Token {
	if len(ml.tokens) == 0 {
		return token.Token{Type: token.EOF}
	}
	return ml.tokens[0]
}

// Advance drops the current token
func (ml *MockLexer) Advance() {
	if len(ml.tokens) > 0 {
		ml.tokens = ml.tokens[1:]
	}
}

// Peek looks one past Current
func (ml *MockLexer) Peek() token.Token {
	if len(ml.tokens) < 2 {
		return token.Token{Type: token.EOF}
	}
	return ml.tokens[1]
}
