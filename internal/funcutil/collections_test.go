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

package funcutil

import (
	"strconv"
	"testing"

	"golang.org/x/exp/slices"
)

func TestMerge(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 10, "z": 3}
	Merge(a, b, func(x int, y int) int { return x + y })
	if a["x"] != 1 || a["y"] != 12 || a["z"] != 3 {
		t.Errorf("merge result = %v", a)
	}
}

func TestUnion(t *testing.T) {
	a := map[int]bool{1: true, 2: true}
	b := map[int]bool{2: true, 3: true}
	Union(a, b)
	for _, k := range []int{1, 2, 3} {
		if !a[k] {
			t.Errorf("union should contain %d", k)
		}
	}
	if len(a) != 3 {
		t.Errorf("union has %d elements, want 3", len(a))
	}
}

func TestUnionSelf(t *testing.T) {
	a := map[int]bool{1: true, 2: true}
	Union(a, a)
	if len(a) != 2 {
		t.Errorf("self union changed the set: %v", a)
	}
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if !slices.Equal(got, []string{"1", "2", "3"}) {
		t.Errorf("Map = %v", got)
	}
	if Map(nil, strconv.Itoa) != nil {
		t.Error("Map of nil should be nil")
	}
}

func TestIter(t *testing.T) {
	sum := 0
	Iter([]int{1, 2, 3}, func(x int) { sum += x })
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}
}

func TestExistsAndContains(t *testing.T) {
	a := []string{"p", "q", "r"}
	if !Exists(a, func(s string) bool { return s == "q" }) {
		t.Error("Exists should find q")
	}
	if Exists(a, func(s string) bool { return s == "z" }) {
		t.Error("Exists should not find z")
	}
	if !Contains(a, "r") || Contains(a, "z") {
		t.Error("Contains mismatch")
	}
}

func TestSetToOrderedSlice(t *testing.T) {
	set := map[string]bool{"c": true, "a": true, "b": true, "skip": false}
	got := SetToOrderedSlice(set)
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("SetToOrderedSlice = %v", got)
	}
	if SetToOrderedSlice(map[int]bool{}) != nil {
		t.Error("empty set should give a nil slice")
	}
}
