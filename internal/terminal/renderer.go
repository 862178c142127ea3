package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/pong/internal/render"
)

const (
	paddleRune = '█'
	ballRune   = '●'
)

// Renderer draws snapshots onto a tcell screen. Row 0 holds the score; the
// arena is scaled into the remaining rows.
type Renderer struct {
	screen tcell.Screen
	paddle tcell.Style
	ball   tcell.Style
	score  tcell.Style
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		paddle: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		ball:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
		score:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	}
}

// viewport maps arena coordinates to cells.
type viewport struct {
	cols, rows int
	sx, sy     float32
}

func (v viewport) col(x float32) int { return clampCell(int(x*v.sx), v.cols) }
func (v viewport) row(y float32) int { return 1 + clampCell(int(y*v.sy), v.rows) }

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

func (r *Renderer) Present(s render.Snapshot) error {
	w, h := r.screen.Size()
	if w < 1 || h < 2 || s.Arena.Width <= 0 || s.Arena.Height <= 0 {
		return nil
	}
	vp := viewport{
		cols: w,
		rows: h - 1,
		sx:   float32(w) / s.Arena.Width,
		sy:   float32(h-1) / s.Arena.Height,
	}

	r.screen.Clear()
	for _, p := range s.Primitives {
		switch p.Shape {
		case render.Rect:
			r.drawRect(vp, p)
		case render.Circle:
			r.drawCircle(vp, p)
		}
	}
	r.drawScore(w, fmt.Sprintf(" %d : %d ", s.Score.Left, s.Score.Right))
	r.screen.Show()
	return nil
}

func (r *Renderer) drawRect(vp viewport, p render.Primitive) {
	c0, c1 := vp.col(p.Center.X-p.Width/2), vp.col(p.Center.X+p.Width/2)
	r0, r1 := vp.row(p.Center.Y-p.Height/2), vp.row(p.Center.Y+p.Height/2)
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			r.screen.SetContent(x, y, paddleRune, nil, r.paddle)
		}
	}
}

func (r *Renderer) drawCircle(vp viewport, p render.Primitive) {
	c0, c1 := vp.col(p.Center.X-p.Radius), vp.col(p.Center.X+p.Radius)
	r0, r1 := vp.row(p.Center.Y-p.Radius), vp.row(p.Center.Y+p.Radius)
	rr := p.Radius * p.Radius
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			// cell centre back in arena coordinates
			dx := (float32(x)+0.5)/vp.sx - p.Center.X
			dy := (float32(y-1)+0.5)/vp.sy - p.Center.Y
			if dx*dx+dy*dy <= rr {
				r.screen.SetContent(x, y, ballRune, nil, r.ball)
			}
		}
	}
	// small balls still cover their own cell
	r.screen.SetContent(vp.col(p.Center.X), vp.row(p.Center.Y), ballRune, nil, r.ball)
}

func (r *Renderer) drawScore(width int, text string) {
	x := (width - len(text)) / 2
	if x < 0 {
		x = 0
	}
	for i, ch := range text {
		if x+i >= width {
			break
		}
		r.screen.SetContent(x+i, 0, ch, nil, r.score)
	}
}
