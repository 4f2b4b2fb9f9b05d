package core

import "testing"

func TestRectCentered(t *testing.T) {
	r := Rect{Y: 2, W: 40, H: 20}.Centered(10, 6)

	if r != (Rect{X: 15, Y: 9, W: 10, H: 6}) {
		t.Errorf("Centered = %+v", r)
	}
	if r.Right() != 25 || r.Bottom() != 15 {
		t.Errorf("Right/Bottom = %d/%d, expected 25/15", r.Right(), r.Bottom())
	}
}

func TestClampAndMax(t *testing.T) {
	tests := []struct {
		val, want int
	}{
		{-3, 0},
		{4, 4},
		{12, 9},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, 0, 9); got != tt.want {
			t.Errorf("Clamp(%d, 0, 9) = %d, expected %d", tt.val, got, tt.want)
		}
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max should return the larger value")
	}
}
