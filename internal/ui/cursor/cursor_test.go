package cursor

import (
	"testing"

	"github.com/llehouerou/tunedeck/internal/keymap"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		delta      int
		wantPos    int
		wantOffset int
	}{
		{"within bounds no scroll", 0, 1, 1, 0},
		{"scrolls to keep margin", 0, 3, 3, 1},
		{"clamps at top", 2, -5, 0, 0},
		{"clamps at bottom", 0, 15, 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2)
			c.Jump(tt.start, 10, 5)
			c.Move(tt.delta, 10, 5)
			if c.Pos() != tt.wantPos || c.Offset() != tt.wantOffset {
				t.Errorf("pos/offset = %d/%d, want %d/%d", c.Pos(), c.Offset(), tt.wantPos, tt.wantOffset)
			}
		})
	}
}

func TestMove_EmptyList(t *testing.T) {
	c := New(2)
	c.Move(3, 0, 5)
	if c.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", c.Pos())
	}
}

func TestJumpEndThenUp(t *testing.T) {
	c := New(2)
	c.JumpEnd(10, 5)
	if c.Pos() != 9 || c.Offset() != 5 {
		t.Fatalf("after JumpEnd pos/offset = %d/%d, want 9/5", c.Pos(), c.Offset())
	}
	c.Move(-3, 10, 5)
	if c.Pos() != 6 || c.Offset() != 4 {
		t.Errorf("pos/offset = %d/%d, want 6/4", c.Pos(), c.Offset())
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(0)
	c.JumpEnd(10, 5)
	c.ClampToBounds(3, 5)
	if c.Pos() != 2 || c.Offset() != 0 {
		t.Errorf("pos/offset = %d/%d, want 2/0", c.Pos(), c.Offset())
	}
	c.ClampToBounds(0, 5)
	if c.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0 for empty list", c.Pos())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)
	start, end := c.VisibleRange(10, 4)
	if start != 4 || end != 8 {
		t.Errorf("VisibleRange = [%d, %d), want [4, 8)", start, end)
	}
	if s, e := c.VisibleRange(0, 4); s != 0 || e != 0 {
		t.Errorf("empty VisibleRange = [%d, %d)", s, e)
	}
}

func TestHandleAction(t *testing.T) {
	tests := []struct {
		action  keymap.Action
		handled bool
		wantPos int
	}{
		{keymap.ActionMoveDown, true, 4},
		{keymap.ActionMoveUp, true, 2},
		{keymap.ActionJumpStart, true, 0},
		{keymap.ActionJumpEnd, true, 9},
		{keymap.ActionPageDown, true, 5},
		{keymap.ActionPageUp, true, 1},
		{keymap.ActionSelect, false, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			c := New(0)
			c.Jump(3, 10, 4)
			if got := c.HandleAction(tt.action, 10, 4); got != tt.handled {
				t.Errorf("HandleAction() = %v, want %v", got, tt.handled)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}
