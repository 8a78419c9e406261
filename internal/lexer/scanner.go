package lexer

import "fmt"

type TokenType string

const (
	// Literals
	TokenTrue   TokenType = "TRUE"
	TokenFalse  TokenType = "FALSE"
	TokenNull   TokenType = "NULL"
	TokenIdent  TokenType = "IDENT"
	TokenString TokenType = "STRING"
	TokenNumber TokenType = "NUMBER"

	// Symbols
	TokenLParen      TokenType = "("
	TokenRParen      TokenType = ")"
	TokenPlus        TokenType = "+"
	TokenMinus       TokenType = "-"
	TokenStar        TokenType = "*"
	TokenSlash       TokenType = "/"
	TokenPercent     TokenType = "%"
	TokenEqual       TokenType = "="
	TokenColon       TokenType = ":"
	TokenDoubleEqual TokenType = "=="
	TokenNotEqual    TokenType = "!="
	TokenLT          TokenType = "<"
	TokenGT          TokenType = ">"
	TokenLE          TokenType = "<="
	TokenGE          TokenType = ">="
	TokenNot         TokenType = "!"
	TokenComma       TokenType = ","
	TokenSemicolon   TokenType = ";"
	TokenEOF         TokenType = "EOF"
)

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("[%s] '%s'", t.Type, t.Lexeme)
}

type Scanner struct {
	source  string
	tokens  []Token
	start   int
	current int
	line    int
	Errors  []string
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: TokenEOF, Lexeme: "", Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(TokenLParen)
	case ')':
		s.addToken(TokenRParen)
	case '+':
		s.addToken(TokenPlus)
	case '-':
		s.addToken(TokenMinus)
	case '*':
		s.addToken(TokenStar)
	case '/':
		s.addToken(TokenSlash)
	case '%':
		s.addToken(TokenPercent)
	case '=':
		if s.match('=') {
			s.addToken(TokenDoubleEqual)
		} else {
			s.addToken(TokenEqual)
		}
	case '!':
		if s.match('=') {
			s.addToken(TokenNotEqual)
		} else {
			s.addToken(TokenNot)
		}
	case '<':
		if s.match('=') {
			s.addToken(TokenLE)
		} else {
			s.addToken(TokenLT)
		}
	case '>':
		if s.match('=') {
			s.addToken(TokenGE)
		} else {
			s.addToken(TokenGT)
		}
	case ':':
		s.addToken(TokenColon)
	case '"':
		s.string()
	case ',':
		s.addToken(TokenComma)
	case ';':
		s.addToken(TokenSemicolon)
	case '#':
		// Skip to end of line (comments)
		for s.peek() != '\n' && !s.isAtEnd() {
			s.advance()
		}
	case '\n':
		s.line++
	case ' ', '\r', '\t':
		// Ignore whitespace
	default:
		if isDigit(c) {
			s.number()
		} else if isAlpha(c) {
			s.identifier()
		} else {
			s.Errors = append(s.Errors, fmt.Sprintf("unexpected character %q at line %d", c, s.line))
		}
	}
}

func (s *Scanner) string() {
	var value []byte
	for s.peek() != '"' && !s.isAtEnd() {
		c := s.advance()
		if c == '\n' {
			s.line++
		}
		if c == '\\' && !s.isAtEnd() {
			switch s.advance() {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case 'r':
				value = append(value, '\r')
			case '"':
				value = append(value, '"')
			case '\\':
				value = append(value, '\\')
			default:
				s.Errors = append(s.Errors, fmt.Sprintf("invalid escape sequence at line %d", s.line))
			}
			continue
		}
		value = append(value, c)
	}
	if s.isAtEnd() {
		s.Errors = append(s.Errors, fmt.Sprintf("unterminated string at line %d", s.line))
		return
	}
	s.advance() // closing quote
	s.tokens = append(s.tokens, Token{Type: TokenString, Lexeme: string(value), Line: s.line})
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.addToken(TokenNumber)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	switch s.source[s.start:s.current] {
	case "true":
		s.addToken(TokenTrue)
	case "false":
		s.addToken(TokenFalse)
	case "null":
		s.addToken(TokenNull)
	default:
		s.addToken(TokenIdent)
	}
}

func (s *Scanner) addToken(t TokenType) {
	s.tokens = append(s.tokens, Token{Type: t, Lexeme: s.source[s.start:s.current], Line: s.line})
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
