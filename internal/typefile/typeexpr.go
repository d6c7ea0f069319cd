package typefile

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"derive-generator/internal/typemodel"
)

// lookupFn resolves a qualified name to a declared named type.
type lookupFn func(typemodel.TypeRef) (typemodel.Type, bool)

// ParseTypeExpr parses a compact type expression into the type model.
//
// Syntax:
//
//	Basics.Int
//	List.List Basics.Int
//	( Basics.Int, String.String )
//	{ name : String.String, age : Basics.Int }
//	Basics.Int -> String.String
//	a                      (generic type variable)
//
// Qualified names resolve against the declared named types via lookup;
// unknown names become opaque references.
func ParseTypeExpr(src string, lookup lookupFn) (typemodel.Type, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks, lookup: lookup}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokEOF {
		return nil, errors.Newf("unexpected %q in type expression %q", p.peek().text, src)
	}

	return t, nil
}

//go:generate go tool stringer -type=tokKind -output=tokkind_string.go

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokArrow
)

type token struct {
	kind tokKind
	text string
}

func lex(src string) ([]token, error) {
	var toks []token

	i := 0
	for i < len(src) {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++

		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++

		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++

		case c == '{':
			toks = append(toks, token{tokLBrace, "{"})
			i++

		case c == '}':
			toks = append(toks, token{tokRBrace, "}"})
			i++

		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++

		case c == ':':
			toks = append(toks, token{tokColon, ":"})
			i++

		case c == '-' && i+1 < len(src) && src[i+1] == '>':
			toks = append(toks, token{tokArrow, "->"})
			i += 2

		case isIdentByte(c):
			start := i
			for i < len(src) && isIdentByte(src[i]) {
				i++
			}

			toks = append(toks, token{tokIdent, src[start:i]})

		default:
			return nil, errors.Newf("unexpected character %q in type expression %q", c, src)
		}
	}

	return append(toks, token{kind: tokEOF}), nil
}

func isIdentByte(c byte) bool {
	return c == '.' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

type parser struct {
	toks   []token
	pos    int
	lookup lookupFn
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) expect(kind tokKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, errors.Newf("expected %s, found %q", what, t.text)
	}

	return t, nil
}

func (p *parser) parseType() (typemodel.Type, error) {
	t, err := p.parseApp()
	if err != nil {
		return nil, err
	}

	if p.peek().kind == tokArrow {
		p.next()

		result, err := p.parseType()
		if err != nil {
			return nil, err
		}

		return &typemodel.Function{Param: t, Result: result}, nil
	}

	return t, nil
}

func (p *parser) parseApp() (typemodel.Type, error) {
	head, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	var args []typemodel.Type

	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	if len(args) == 0 {
		return head, nil
	}

	op, ok := head.(*typemodel.Opaque)
	if !ok || len(op.Args) > 0 {
		return nil, errors.Newf("type %s cannot be applied to arguments", head.String())
	}

	return &typemodel.Opaque{Ref: op.Ref, Args: args}, nil
}

func (p *parser) startsAtom() bool {
	switch p.peek().kind {
	case tokIdent, tokLParen, tokLBrace:
		return true
	default:
		return false
	}
}

func (p *parser) parseAtom() (typemodel.Type, error) {
	switch t := p.next(); t.kind {
	case tokIdent:
		return p.resolveName(t.text), nil

	case tokLParen:
		return p.parseParens()

	case tokLBrace:
		return p.parseRecord()

	default:
		return nil, errors.Newf("unexpected %q in type expression", t.text)
	}
}

// resolveName turns an identifier into a type: lowercase bare names are
// generic variables, declared names resolve to their alias/custom type, and
// anything else is an opaque reference.
func (p *parser) resolveName(name string) typemodel.Type {
	if !strings.Contains(name, ".") && unicode.IsLower(rune(name[0])) {
		return &typemodel.GenericVar{Name: name}
	}

	ref := splitRef(name)

	if p.lookup != nil {
		if named, ok := p.lookup(ref); ok {
			return named
		}
	}

	return &typemodel.Opaque{Ref: ref}
}

func (p *parser) parseParens() (typemodel.Type, error) {
	if p.peek().kind == tokRParen {
		p.next()
		return &typemodel.Tuple{}, nil
	}

	var items []typemodel.Type

	for {
		item, err := p.parseType()
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		if p.peek().kind != tokComma {
			break
		}

		p.next()
	}

	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}

	if len(items) == 1 {
		return items[0], nil
	}

	return &typemodel.Tuple{Items: items}, nil
}

func (p *parser) parseRecord() (typemodel.Type, error) {
	var fields []typemodel.Field

	for p.peek().kind != tokRBrace {
		name, err := p.expect(tokIdent, "field name")
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokColon, `":"`); err != nil {
			return nil, err
		}

		fieldType, err := p.parseType()
		if err != nil {
			return nil, err
		}

		fields = append(fields, typemodel.Field{Name: name.text, Type: fieldType})

		if p.peek().kind != tokComma {
			break
		}

		p.next()
	}

	if _, err := p.expect(tokRBrace, `"}"`); err != nil {
		return nil, err
	}

	return &typemodel.Record{Fields: fields}, nil
}

// splitRef splits a qualified name into module path and final name.
func splitRef(qualified string) typemodel.TypeRef {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return typemodel.TypeRef{Name: qualified}
	}

	return typemodel.TypeRef{Module: qualified[:idx], Name: qualified[idx+1:]}
}
