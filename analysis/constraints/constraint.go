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

// Package constraints defines the assignment constraint language consumed by
// the points-to solver, and the parser producing constraint sequences from
// its textual form.
package constraints

import "fmt"

// Kind discriminates the four assignment forms of the constraint language.
type Kind int

const (
	// Addr is left = &right
	// pts(left) ⊇ {right}
	// The base constraint; the only way objects enter a points-to set.
	Addr Kind = iota

	// Equal is left = right
	// A simple constraint, represented directly as an inclusion edge
	// right → left in the constraint graph.
	Equal

	// DerefRight is left = *right (a load through right)
	// A complex constraint resolved during solving: for every object o in
	// pts(right), pts(left) ⊇ pts(o).
	DerefRight

	// DerefLeft is *left = right (a store through left)
	// A complex constraint resolved during solving: for every object o in
	// pts(left), pts(o) ⊇ pts(right).
	DerefLeft
)

func (k Kind) String() string {
	switch k {
	case Addr:
		return "addr"
	case Equal:
		return "copy"
	case DerefRight:
		return "load"
	case DerefLeft:
		return "store"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Constraint is one parsed assignment statement. Identifiers are opaque
// strings: there is no scoping or declaration requirement, any identifier
// occurring in a constraint implicitly exists as a variable.
type Constraint struct {
	Left  string
	Right string
	Kind  Kind
}

func (c Constraint) String() string {
	switch c.Kind {
	case Addr:
		return fmt.Sprintf("%s = &%s", c.Left, c.Right)
	case Equal:
		return fmt.Sprintf("%s = %s", c.Left, c.Right)
	case DerefRight:
		return fmt.Sprintf("%s = *%s", c.Left, c.Right)
	case DerefLeft:
		return fmt.Sprintf("*%s = %s", c.Left, c.Right)
	default:
		return fmt.Sprintf("%s ?%s? %s", c.Left, c.Kind, c.Right)
	}
}
