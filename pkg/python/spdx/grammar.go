// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package spdx

// validate checks the structure of a lower-cased token stream against the grammar
//
//	expr := and  ( "or"   and )*
//	and  := with ( "and"  with )*
//	with := atom [ "with" ID ]
//	atom := ID | "(" expr ")"
//
// It does not check whether the IDs are known.
func validate(tokens []string) bool {
	p := &parser{tokens: tokens}
	return p.expr() && p.pos == len(p.tokens)
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *parser) expr() bool {
	if !p.and() {
		return false
	}
	for p.peek() == "or" {
		p.pos++
		if !p.and() {
			return false
		}
	}
	return true
}

func (p *parser) and() bool {
	if !p.with() {
		return false
	}
	for p.peek() == "and" {
		p.pos++
		if !p.with() {
			return false
		}
	}
	return true
}

func (p *parser) with() bool {
	if !p.atom() {
		return false
	}
	if p.peek() == "with" {
		p.pos++
		return p.id()
	}
	return true
}

func (p *parser) atom() bool {
	if p.peek() == "(" {
		p.pos++
		return p.expr() && p.consume(")")
	}
	return p.id()
}

func (p *parser) id() bool {
	tok := p.peek()
	if tok == "" || isOperator(tok) {
		return false
	}
	p.pos++
	return true
}

func (p *parser) consume(tok string) bool {
	if p.peek() != tok {
		return false
	}
	p.pos++
	return true
}
