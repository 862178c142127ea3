package world

import "github.com/l1jgo/pong/internal/component"

// Arena is the fixed play field. Coordinates run from (0, 0) to
// (Width, Height); it never changes after startup.
type Arena struct {
	Width  float32
	Height float32
}

func NewArena(width, height float32) Arena {
	return Arena{Width: width, Height: height}
}

// Center returns the spawn point for balls.
func (a Arena) Center() component.Position {
	return component.Position{X: a.Width / 2, Y: a.Height / 2}
}

// AtSideWall reports whether x sits exactly on the left or right wall.
func (a Arena) AtSideWall(x float32) bool {
	return x == 0 || x == a.Width
}

// AtEndWall reports whether y sits exactly on the top or bottom wall.
func (a Arena) AtEndWall(y float32) bool {
	return y == 0 || y == a.Height
}
