package semtok

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		prev []uint32
		next []uint32
		want []Edit
	}{
		{
			name: "equal arrays",
			prev: []uint32{0, 0, 3, 1, 0},
			next: []uint32{0, 0, 3, 1, 0},
			want: []Edit{},
		},
		{
			name: "both empty",
			prev: []uint32{},
			next: []uint32{},
			want: []Edit{},
		},
		{
			name: "append one token",
			prev: []uint32{0, 0, 3, 1, 0},
			next: []uint32{0, 0, 3, 1, 0, 0, 5, 2, 2, 1},
			want: []Edit{{Start: 5, DeleteCount: 0, Data: []uint32{0, 5, 2, 2, 1}}},
		},
		{
			name: "empty previous inserts everything",
			prev: []uint32{},
			next: []uint32{0, 0, 3, 1, 0, 1, 0, 2, 2, 0},
			want: []Edit{{Start: 0, DeleteCount: 0, Data: []uint32{0, 0, 3, 1, 0, 1, 0, 2, 2, 0}}},
		},
		{
			name: "empty next deletes everything",
			prev: []uint32{0, 0, 3, 1, 0, 1, 0, 2, 2, 0},
			next: []uint32{},
			want: []Edit{{Start: 0, DeleteCount: 10}},
		},
		{
			name: "replace middle group",
			prev: []uint32{0, 0, 3, 1, 0, 1, 0, 2, 2, 0, 1, 4, 6, 3, 0},
			next: []uint32{0, 0, 3, 1, 0, 1, 0, 9, 9, 0, 1, 4, 6, 3, 0},
			want: []Edit{{Start: 5, DeleteCount: 5, Data: []uint32{1, 0, 9, 9, 0}}},
		},
		{
			// The trailing group survives as common suffix, so only the
			// leading group is spliced out.
			name: "delete leading group",
			prev: []uint32{0, 0, 3, 1, 0, 1, 0, 2, 2, 0},
			next: []uint32{1, 0, 2, 2, 0},
			want: []Edit{{Start: 0, DeleteCount: 5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.prev, tt.next)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiffApplyReproducesNext(t *testing.T) {
	pairs := [][2][]uint32{
		{{}, {}},
		{{}, {0, 0, 3, 1, 0}},
		{{0, 0, 3, 1, 0}, {}},
		{{0, 0, 3, 1, 0}, {0, 0, 3, 1, 0}},
		{{0, 0, 3, 1, 0, 0, 5, 2, 2, 1}, {0, 0, 3, 1, 0}},
		{
			{0, 0, 3, 1, 0, 1, 0, 2, 2, 0, 1, 4, 6, 3, 0},
			{0, 0, 4, 1, 0, 1, 0, 2, 2, 0, 2, 1, 1, 5, 0, 0, 3, 2, 6, 0},
		},
		{
			{0, 0, 1, 1, 0, 0, 2, 1, 1, 0, 0, 2, 1, 1, 0},
			{0, 0, 1, 1, 0, 0, 2, 1, 2, 0, 0, 2, 1, 1, 0},
		},
	}
	for _, p := range pairs {
		prev, next := p[0], p[1]
		edits := Diff(prev, next)
		got := Apply(prev, edits)
		if len(got) == 0 && len(next) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, next) {
			t.Errorf("Apply(Diff(%v, %v)) = %v, want %v", prev, next, got, next)
		}
	}
}

func TestDiffAlignment(t *testing.T) {
	pairs := [][2][]uint32{
		{{0, 0, 3, 1, 0}, {0, 0, 5, 1, 0}},
		{{0, 0, 3, 1, 0, 0, 5, 2, 2, 1}, {0, 0, 3, 1, 0, 0, 6, 2, 2, 1}},
		{{1, 1, 1, 1, 1, 2, 2, 2, 2, 2}, {3, 3, 3, 3, 3}},
	}
	for _, p := range pairs {
		for _, e := range Diff(p[0], p[1]) {
			if e.Start%5 != 0 {
				t.Errorf("Diff(%v, %v): edit start %d not 5-aligned", p[0], p[1], e.Start)
			}
			if (e.Start+e.DeleteCount)%5 != 0 {
				t.Errorf("Diff(%v, %v): edit end %d not 5-aligned", p[0], p[1], e.Start+e.DeleteCount)
			}
			if len(e.Data)%5 != 0 {
				t.Errorf("Diff(%v, %v): edit data length %d not 5-aligned", p[0], p[1], len(e.Data))
			}
		}
	}
}
