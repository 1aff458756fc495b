package expr

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

var (
	ErrSyntax  = errors.New("invalid syntax")
	ErrName    = errors.New("undefined name")
	ErrEmpty   = errors.New("empty expression")
	ErrTooLong = errors.New("expression too long")
)

// NameError is an identifier that is neither a bound variable nor a
// constant. It matches ErrName.
type NameError struct{ Name string }

func (e *NameError) Error() string        { return fmt.Sprintf("name '%s' is not defined", e.Name) }
func (e *NameError) Is(target error) bool { return target == ErrName }

// MaxDepth bounds parenthesis and operator nesting.
const MaxDepth = 64

// Parse parses src without a length limit.
func Parse(src string) (Node, error) {
	return ParseLimit(src, 0)
}

// ParseLimit parses src, rejecting inputs longer than maxLen characters when
// maxLen > 0.
func ParseLimit(src string, maxLen int) (Node, error) {
	if Normalize(src) == "" {
		return nil, ErrEmpty
	}
	if n := utf8.RuneCountInString(src); maxLen > 0 && n > maxLen {
		return nil, fmt.Errorf("%w (%d > %d characters)", ErrTooLong, n, maxLen)
	}

	p := &parser{lx: lexer{s: src}}
	p.advance()
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

type parser struct {
	lx    lexer
	tok   token
	depth int
}

func (p *parser) advance() { p.tok = p.lx.next() }

func (p *parser) unexpected() error {
	switch p.tok.kind {
	case tokEOF:
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	case tokIllegal:
		return fmt.Errorf("%w: invalid character '%s' at column %d", ErrSyntax, p.tok.text, p.tok.pos)
	}
	return fmt.Errorf("%w: unexpected '%s' at column %d", ErrSyntax, p.tok.text, p.tok.pos)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("%w: expression nested deeper than %d levels", ErrSyntax, MaxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.text[0]
		p.advance()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.text[0]
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary binds looser than power so that -x**2 is -(x**2).
func (p *parser) parseUnary() (Node, error) {
	if p.tok.kind != tokPlus && p.tok.kind != tokMinus {
		return p.parsePower()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.tok.text[0]
	p.advance()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op, X: x}, nil
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokPow {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.advance()
	// right-associative; the exponent may carry its own sign (2**-1)
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: '^', Left: base, Right: exp}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.kind {
	case tokNumber:
		text := p.tok.text
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number '%s' at column %d", ErrSyntax, text, p.tok.pos)
		}
		p.advance()
		return &Number{Text: text, Value: v}, nil

	case tokIdent:
		name := p.tok.text
		p.advance()
		if p.tok.kind == tokLParen {
			return p.parseCall(name)
		}
		return &Ident{Name: name}, nil

	case tokLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		p.advance()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			if p.tok.kind == tokEOF {
				return nil, fmt.Errorf("%w: '(' was never closed", ErrSyntax)
			}
			return nil, p.unexpected()
		}
		p.advance()
		return inner, nil
	}
	return nil, p.unexpected()
}

func (p *parser) parseCall(name string) (Node, error) {
	if _, ok := Lookup(name); !ok {
		if s := Suggest(name); s != "" {
			return nil, fmt.Errorf("%w: unknown function '%s' (did you mean '%s'?)", ErrName, name, s)
		}
		return nil, fmt.Errorf("%w: unknown function '%s'", ErrName, name)
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.advance() // (
	var args []Node
	if p.tok.kind != tokRParen {
		for {
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.kind != tokComma {
				break
			}
			p.advance()
		}
	}
	if p.tok.kind != tokRParen {
		if p.tok.kind == tokEOF {
			return nil, fmt.Errorf("%w: '(' was never closed", ErrSyntax)
		}
		return nil, p.unexpected()
	}
	p.advance()

	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s() takes exactly one argument (%d given)", ErrSyntax, name, len(args))
	}
	return &Call{Func: Canonical(name), Arg: args[0]}, nil
}
