package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 2, W: 5, H: 3}
	tests := []struct {
		p    Vec
		want bool
	}{
		{Vec{10, 2}, true},
		{Vec{14.9, 4.9}, true},
		{Vec{15, 2}, false},
		{Vec{10, 5}, false},
		{Vec{9.99, 3}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectLocalAndOffset(t *testing.T) {
	r := Rect{X: 10, Y: 2, W: 5, H: 3}
	if got, want := r.Local(Vec{12, 4}), (Vec{2, 2}); got != want {
		t.Errorf("Local = %v, want %v", got, want)
	}
	if got, want := r.Offset(Vec{-3, 1}), (Rect{X: 7, Y: 3, W: 5, H: 3}); got != want {
		t.Errorf("Offset = %v, want %v", got, want)
	}
}
