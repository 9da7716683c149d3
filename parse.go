package expressivo

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// The accepted language:
//
//	root := stat EOF
//	stat := expr ( '\n' | EOF )
//	expr := term { '+' term }
//	term := atom { '*' atom }
//	atom := ID | NUM | '(' expr ')'
//
//	ID   := [A-Za-z][A-Za-z0-9_]*
//	NUM  := [0-9]+ ( '.' [0-9]* )?
//
// Spaces, tabs and carriage returns between tokens are ignored.

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokLParen
	tokRParen
	tokMul
	tokAdd
	tokNewline
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "variable"
	case tokNumber:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokMul:
		return "'*'"
	case tokAdd:
		return "'+'"
	case tokNewline:
		return "end of line"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

type token struct {
	t   tokenType
	s   string
	pos int
}

// Parse parses a single expression statement.
func Parse(s string) (*Node, error) {
	return NewParser(strings.NewReader(s)).Parse()
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		buf: bufio.NewReader(r),
	}
}

type Parser struct {
	buf    *bufio.Reader
	pos    int
	last   int
	tok    token
	peeked bool
}

func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) readRune() (rune, error) {
	r, n, err := p.buf.ReadRune()
	p.pos += n
	p.last = n
	return r, err
}

func (p *Parser) unreadRune() {
	if p.last == 0 {
		return
	}
	p.buf.UnreadRune()
	p.pos -= p.last
	p.last = 0
}

func (p *Parser) errorf(pos int, tok string, format string, args ...interface{}) error {
	return &InvalidExpressionError{
		Pos:   pos,
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// SkipWhite skips blanks up to the next token. A newline is a token.
func (p *Parser) SkipWhite() {
	for {
		r, err := p.readRune()
		if err != nil {
			return
		}
		if r != ' ' && r != '\t' && r != '\r' {
			p.unreadRune()
			return
		}
	}
}

func (p *Parser) scan() (token, error) {
	p.SkipWhite()
	start := p.pos
	r, err := p.readRune()
	if err == io.EOF {
		return token{t: tokEOF, pos: start}, nil
	}
	if err != nil {
		return token{}, errors.Wrap(err, "reading expression")
	}

	switch r {
	case '(':
		return token{t: tokLParen, s: "(", pos: start}, nil
	case ')':
		return token{t: tokRParen, s: ")", pos: start}, nil
	case '*':
		return token{t: tokMul, s: "*", pos: start}, nil
	case '+':
		return token{t: tokAdd, s: "+", pos: start}, nil
	case '\n':
		return token{t: tokNewline, s: "\n", pos: start}, nil
	}
	if isLetter(r) {
		p.unreadRune()
		return p.scanIdent(start)
	}
	if isDigit(r) {
		p.unreadRune()
		return p.scanNumber(start)
	}
	return token{}, p.errorf(start, string(r), "unexpected character")
}

func (p *Parser) scanWord(buf *bytes.Buffer, accept func(rune) bool) error {
	for {
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading expression")
		}
		if !accept(r) {
			p.unreadRune()
			return nil
		}
		buf.WriteRune(r)
	}
}

func (p *Parser) scanIdent(start int) (token, error) {
	var buf bytes.Buffer
	if err := p.scanWord(&buf, isWordLetter); err != nil {
		return token{}, err
	}
	return token{t: tokIdent, s: buf.String(), pos: start}, nil
}

func (p *Parser) scanNumber(start int) (token, error) {
	var buf bytes.Buffer
	dot := false
	err := p.scanWord(&buf, func(r rune) bool {
		if r == '.' && !dot {
			dot = true
			return true
		}
		return isDigit(r)
	})
	if err != nil {
		return token{}, err
	}

	// A second dot or a letter glued to the digits makes the literal malformed.
	var rest bytes.Buffer
	err = p.scanWord(&rest, func(r rune) bool {
		return r == '.' || isWordLetter(r)
	})
	if err != nil {
		return token{}, err
	}
	if rest.Len() > 0 {
		return token{}, p.errorf(start, buf.String()+rest.String(), "malformed number")
	}
	return token{t: tokNumber, s: buf.String(), pos: start}, nil
}

func (p *Parser) next() (token, error) {
	if p.peeked {
		p.peeked = false
		return p.tok, nil
	}
	return p.scan()
}

func (p *Parser) peek() (token, error) {
	if !p.peeked {
		tok, err := p.scan()
		if err != nil {
			return tok, err
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok, nil
}

// Parse reads one statement: an expression followed by a newline or the
// end of input. Nothing but blanks may follow the newline.
func (p *Parser) Parse() (*Node, error) {
	node, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.t {
	case tokEOF:
		return node, nil
	case tokNewline:
		tok, err = p.next()
		if err != nil {
			return nil, err
		}
		if tok.t != tokEOF {
			return nil, p.errorf(tok.pos, tok.s, "unexpected input after end of line")
		}
		return node, nil
	case tokRParen:
		return nil, p.errorf(tok.pos, tok.s, "unmatched ')'")
	}
	return nil, p.errorf(tok.pos, tok.s, "expected '+', '*' or end of line, found %v", tok.t)
}

func (p *Parser) ParseExpr() (*Node, error) {
	node, err := p.ParseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.t != tokAdd {
			return node, nil
		}
		p.next()
		right, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		node = sum(node, right)
	}
}

func (p *Parser) ParseTerm() (*Node, error) {
	node, err := p.ParseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.t != tokMul {
			return node, nil
		}
		p.next()
		right, err := p.ParseAtom()
		if err != nil {
			return nil, err
		}
		node = product(node, right)
	}
}

func (p *Parser) ParseAtom() (*Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.t {
	case tokIdent:
		return &Node{t: NodeVariable, v: tok.s}, nil
	case tokNumber:
		return &Node{t: NodeNumber, v: tok.s}, nil
	case tokLParen:
		node, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.next()
		if err != nil {
			return nil, err
		}
		if end.t != tokRParen {
			return nil, p.errorf(end.pos, end.s, "expected ')'")
		}
		return node, nil
	case tokRParen:
		return nil, p.errorf(tok.pos, tok.s, "unmatched ')'")
	case tokEOF, tokNewline:
		return nil, p.errorf(tok.pos, "", "unexpected %v", tok.t)
	}
	return nil, p.errorf(tok.pos, tok.s, "expected a variable, number or '(', found %v", tok.t)
}
