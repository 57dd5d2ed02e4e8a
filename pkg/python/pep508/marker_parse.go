// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep508

import (
	"fmt"
	"regexp"
	"strings"
)

type markerTokenKind int

const (
	tokEOF markerTokenKind = iota
	tokLParen
	tokRParen
	tokString
	tokVariable
	tokOp
	tokAnd
	tokOr
)

type markerToken struct {
	kind markerTokenKind
	text string
}

var reMarkerToken = regexp.MustCompile(`^(?:` + strings.Join([]string{
	`(?P<lparen>\()`,
	`(?P<rparen>\))`,
	`'(?P<squote>[^']*)'`,
	`"(?P<dquote>[^"]*)"`,
	`(?P<op>===|==|!=|<=|>=|~=|<|>|not\s+in\b|in\b)`,
	`(?P<bool>and\b|or\b)`,
	`(?P<ident>[A-Za-z_][A-Za-z0-9_.]*)`,
}, "|") + `)`)

func lexMarker(str string) ([]markerToken, error) {
	var ret []markerToken
	rest := strings.TrimSpace(str)
	for rest != "" {
		match := reMarkerToken.FindStringSubmatch(rest)
		if match == nil {
			return nil, fmt.Errorf("invalid marker: unexpected input at %q", rest)
		}
		group := func(name string) string {
			return match[reMarkerToken.SubexpIndex(name)]
		}
		switch {
		case group("lparen") != "":
			ret = append(ret, markerToken{tokLParen, "("})
		case group("rparen") != "":
			ret = append(ret, markerToken{tokRParen, ")"})
		case strings.HasPrefix(match[0], "'"):
			ret = append(ret, markerToken{tokString, group("squote")})
		case strings.HasPrefix(match[0], `"`):
			ret = append(ret, markerToken{tokString, group("dquote")})
		case group("op") != "":
			op := group("op")
			if strings.HasPrefix(op, "not") {
				op = "not in"
			}
			ret = append(ret, markerToken{tokOp, op})
		case group("bool") == "and":
			ret = append(ret, markerToken{tokAnd, "and"})
		case group("bool") == "or":
			ret = append(ret, markerToken{tokOr, "or"})
		default:
			ret = append(ret, markerToken{tokVariable, group("ident")})
		}
		rest = strings.TrimSpace(rest[len(match[0]):])
	}
	return append(ret, markerToken{kind: tokEOF}), nil
}

type markerParser struct {
	toks []markerToken
	pos  int
}

func (p *markerParser) peek() markerToken {
	return p.toks[p.pos]
}

func (p *markerParser) next() markerToken {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func parseMarker(str string) (*Marker, error) {
	toks, err := lexMarker(str)
	if err != nil {
		return nil, err
	}
	p := &markerParser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("invalid marker: unexpected %q", tok.text)
	}
	return &Marker{expr: expr}, nil
}

func (p *markerParser) parseOr() (markerExpr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = markerBool{op: "or", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *markerParser) parseAnd() (markerExpr, error) {
	lhs, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		rhs, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		lhs = markerBool{op: "and", lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *markerParser) parseAtom() (markerExpr, error) {
	if p.peek().kind == tokLParen {
		p.next()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if tok := p.next(); tok.kind != tokRParen {
			return nil, fmt.Errorf("invalid marker: expected ')'")
		}
		return expr, nil
	}
	lhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	op := p.next()
	if op.kind != tokOp {
		return nil, fmt.Errorf("invalid marker: expected comparison operator after %s", lhs)
	}
	rhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return markerCompare{lhs: lhs, op: op.text, rhs: rhs}, nil
}

func (p *markerParser) parseValue() (markerValue, error) {
	tok := p.next()
	switch tok.kind {
	case tokString:
		return markerValue{literal: tok.text}, nil
	case tokVariable:
		name := tok.text
		if canonical, ok := legacyVariables[name]; ok {
			name = canonical
		}
		for _, known := range Variables {
			if name == known {
				return markerValue{variable: name}, nil
			}
		}
		return markerValue{}, fmt.Errorf("invalid marker: unknown variable %q", tok.text)
	case tokEOF:
		return markerValue{}, fmt.Errorf("invalid marker: unexpected end of marker")
	default:
		return markerValue{}, fmt.Errorf("invalid marker: expected variable or quoted string, got %q", tok.text)
	}
}
