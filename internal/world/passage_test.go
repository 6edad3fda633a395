package world

import (
	"reflect"
	"testing"
)

func TestPassageCells(t *testing.T) {
	tests := []struct {
		name string
		p    Passage
		want []Point
	}{
		{"right", NewPassage(1, 2, 3, 2), []Point{{1, 2}, {2, 2}, {3, 2}}},
		{"left", NewPassage(3, 2, 1, 2), []Point{{3, 2}, {2, 2}, {1, 2}}},
		{"down", NewPassage(4, 0, 4, 2), []Point{{4, 0}, {4, 1}, {4, 2}}},
		{"up", NewPassage(4, 2, 4, 1), []Point{{4, 2}, {4, 1}}},
		{"single", NewPassage(5, 5, 5, 5), []Point{{5, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Cells(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Cells() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPartitionOrientation(t *testing.T) {
	p := Partition{X: 0, Y: 5, Length: 10, Orientation: Horizontal}
	if !p.Horizontal() || p.Vertical() {
		t.Errorf("%+v should be horizontal", p)
	}
	if Vertical.String() != "vertical" || Orientation(9).String() != "unknown" {
		t.Error("unexpected orientation names")
	}
}
