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
	"errors"
	"testing"

	"golang.org/x/exp/slices"
)

func TestParseSingleForms(t *testing.T) {
	tests := []struct {
		input string
		want  Constraint
	}{
		{"p = &q", Constraint{"p", "q", Addr}},
		{"p = q", Constraint{"p", "q", Equal}},
		{"p = *q", Constraint{"p", "q", DerefRight}},
		{"*p = q", Constraint{"p", "q", DerefLeft}},
		{"  p=&q  ", Constraint{"p", "q", Addr}},
		{"p\t=\t*\tq", Constraint{"p", "q", DerefRight}},
		{"*  p  =  q;", Constraint{"p", "q", DerefLeft}},
		{"x1 = &y2", Constraint{"x1", "y2", Addr}},
	}
	for _, test := range tests {
		cons, err := Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", test.input, err)
			continue
		}
		if len(cons) != 1 || cons[0] != test.want {
			t.Errorf("Parse(%q) = %v, want [%v]", test.input, cons, test.want)
		}
	}
}

func TestParseStatementList(t *testing.T) {
	input := "a = &b; c = a\n*a = c ; d = *c;\n"
	want := []Constraint{
		{"a", "b", Addr},
		{"c", "a", Equal},
		{"a", "c", DerefLeft},
		{"d", "c", DerefRight},
	}
	cons, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !slices.Equal(cons, want) {
		t.Errorf("Parse(%q) = %v, want %v", input, cons, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t \n", ";"} {
		cons, err := Parse(input)
		if input == ";" {
			// A bare separator has no statement in front of it.
			if err == nil {
				t.Errorf("Parse(%q) should fail", input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", input, err)
		}
		if len(cons) != 0 {
			t.Errorf("Parse(%q) = %v, want no constraints", input, cons)
		}
	}
}

func TestParseFailures(t *testing.T) {
	tests := []string{
		"a == b",
		"a = ",
		"= b",
		"1a = b",
		"a = &",
		"a = *",
		"a & b",
		"a = b extra!",
		"a = b; c",
		"**a = b",
	}
	for _, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("a = &b\nc == d\n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 2 {
		t.Errorf("error line = %d, want 2", perr.Line)
	}
}

func TestConstraintString(t *testing.T) {
	tests := []struct {
		c    Constraint
		want string
	}{
		{Constraint{"p", "q", Addr}, "p = &q"},
		{Constraint{"p", "q", Equal}, "p = q"},
		{Constraint{"p", "q", DerefRight}, "p = *q"},
		{Constraint{"p", "q", DerefLeft}, "*p = q"},
	}
	for _, test := range tests {
		if s := test.c.String(); s != test.want {
			t.Errorf("String() = %q, want %q", s, test.want)
		}
	}
}
