package parser

import (
	"strconv"

	"vulnscript/internal/errors"
	"vulnscript/internal/lexer"
)

// Parser turns a token stream into a list of top-level statements.
// Parse errors are collected on Errors; callers must check it before
// executing the returned statements.
type Parser struct {
	tokens  []lexer.Token
	current int
	Errors  []error
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		Errors: []error{},
	}
}

// Parse consumes the whole token stream and returns one Stmt per
// semicolon-terminated statement.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.isAtEnd() {
		line := p.peek().Line
		expr := p.expression()
		p.consume(lexer.TokenSemicolon, "expected ';' after statement")
		stmts = append(stmts, &ExprStmt{Expr: expr, Line: line})
	}
	return stmts
}

func (p *Parser) expression() Expr {
	return p.assignment()
}

func (p *Parser) assignment() Expr {
	// Lookahead for IDENT '=' (but not '==')
	if p.check(lexer.TokenIdent) && p.checkNext(lexer.TokenEqual) {
		name := p.advance().Lexeme
		p.advance() // '='
		return &Assign{Name: name, Value: p.assignment()}
	}
	return p.equality()
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.check(lexer.TokenDoubleEqual) || p.check(lexer.TokenNotEqual) {
		op := p.advance()
		expr = &Binary{Left: expr, Operator: op.Lexeme, Right: p.comparison(), Line: op.Line}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.check(lexer.TokenLT) || p.check(lexer.TokenGT) || p.check(lexer.TokenLE) || p.check(lexer.TokenGE) {
		op := p.advance()
		expr = &Binary{Left: expr, Operator: op.Lexeme, Right: p.term(), Line: op.Line}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.check(lexer.TokenPlus) || p.check(lexer.TokenMinus) {
		op := p.advance()
		expr = &Binary{Left: expr, Operator: op.Lexeme, Right: p.factor(), Line: op.Line}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.check(lexer.TokenStar) || p.check(lexer.TokenSlash) || p.check(lexer.TokenPercent) {
		op := p.advance()
		expr = &Binary{Left: expr, Operator: op.Lexeme, Right: p.unary(), Line: op.Line}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.check(lexer.TokenMinus) || p.check(lexer.TokenNot) {
		op := p.advance()
		return &Unary{Operator: op.Lexeme, Right: p.unary()}
	}
	return p.primary()
}

func (p *Parser) primary() Expr {
	tok := p.advance()
	switch tok.Type {
	case lexer.TokenNumber:
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.Errors = append(p.Errors, errors.NewSyntaxError("invalid number literal "+tok.Lexeme, tok.Line))
		}
		return &Literal{Value: n}
	case lexer.TokenString:
		return &Literal{Value: tok.Lexeme}
	case lexer.TokenTrue:
		return &Literal{Value: true}
	case lexer.TokenFalse:
		return &Literal{Value: false}
	case lexer.TokenNull:
		return &Literal{Value: nil}
	case lexer.TokenIdent:
		if p.check(lexer.TokenLParen) {
			return p.call(tok)
		}
		return &Variable{Name: tok.Lexeme, Line: tok.Line}
	case lexer.TokenLParen:
		expr := p.expression()
		p.consume(lexer.TokenRParen, "expected ')' after expression")
		return expr
	default:
		p.Errors = append(p.Errors, errors.NewSyntaxError("unexpected token "+string(tok.Type), tok.Line))
		return &Literal{Value: nil}
	}
}

// call parses an argument list. Arguments are positional by default;
// an IDENT ':' prefix makes them named.
func (p *Parser) call(name lexer.Token) Expr {
	p.advance() // '('
	var args []Arg
	if !p.check(lexer.TokenRParen) {
		for {
			if p.check(lexer.TokenIdent) && p.checkNext(lexer.TokenColon) {
				argName := p.advance().Lexeme
				p.advance() // ':'
				args = append(args, Arg{Name: argName, Value: p.expression()})
			} else {
				args = append(args, Arg{Value: p.expression()})
			}
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRParen, "expected ')' after arguments")
	return &Call{Name: name.Lexeme, Args: args, Line: name.Line}
}

func (p *Parser) consume(t lexer.TokenType, message string) {
	if p.check(t) {
		p.advance()
		return
	}
	p.Errors = append(p.Errors, errors.NewSyntaxError(message, p.peek().Line))
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) checkNext(t lexer.TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == t
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokenEOF
}
