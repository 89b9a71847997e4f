// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package constraints

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports the position at which the input stopped matching the
// constraint grammar. Offset is a byte offset into the input.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse consumes the entire input and returns the ordered constraint
// sequence. Statements are separated by semicolons and/or newlines;
// whitespace between tokens is insignificant. Any leftover text that does
// not match the grammar is a parse failure: there are no partial results.
func Parse(input string) ([]Constraint, error) {
	p := &parser{src: input}
	var cons []Constraint
	for {
		p.skipSpace()
		if p.eof() {
			return cons, nil
		}
		c, err := p.statement()
		if err != nil {
			return nil, err
		}
		cons = append(cons, c)
		// Optional statement terminator.
		p.skipSpace()
		if !p.eof() && p.peek() == ';' {
			p.pos++
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// statement parses one of the four assignment forms:
//
//	p = &q | p = q | p = *q | *p = q
func (p *parser) statement() (Constraint, error) {
	if p.peek() == '*' {
		// *left = right
		p.pos++
		p.skipSpace()
		left, err := p.identifier()
		if err != nil {
			return Constraint{}, err
		}
		if err := p.expect('='); err != nil {
			return Constraint{}, err
		}
		p.skipSpace()
		right, err := p.identifier()
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Left: left, Right: right, Kind: DerefLeft}, nil
	}

	left, err := p.identifier()
	if err != nil {
		return Constraint{}, err
	}
	if err := p.expect('='); err != nil {
		return Constraint{}, err
	}
	p.skipSpace()
	if !p.eof() {
		switch p.peek() {
		case '&':
			p.pos++
			p.skipSpace()
			right, err := p.identifier()
			if err != nil {
				return Constraint{}, err
			}
			return Constraint{Left: left, Right: right, Kind: Addr}, nil
		case '*':
			p.pos++
			p.skipSpace()
			right, err := p.identifier()
			if err != nil {
				return Constraint{}, err
			}
			return Constraint{Left: left, Right: right, Kind: DerefRight}, nil
		}
	}
	right, err := p.identifier()
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{Left: left, Right: right, Kind: Equal}, nil
}

// identifier matches one alphabetic lead rune followed by zero or more
// alphanumeric runes.
func (p *parser) identifier() (string, error) {
	start := p.pos
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if p.eof() || !unicode.IsLetter(r) {
		return "", p.errorf("expected identifier")
	}
	p.pos += size
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos], nil
}

func (p *parser) expect(tok byte) error {
	p.skipSpace()
	if p.eof() || p.peek() != tok {
		return p.errorf("expected %q", string(tok))
	}
	p.pos++
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	consumed := p.src[:p.pos]
	line := strings.Count(consumed, "\n") + 1
	col := p.pos - strings.LastIndexByte(consumed, '\n')
	return &ParseError{
		Offset: p.pos,
		Line:   line,
		Column: col,
		Msg:    fmt.Sprintf(format, args...),
	}
}
