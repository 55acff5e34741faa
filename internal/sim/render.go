package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

// Render draws the playfield scaled into dst with a status line on top.
// It reads state only.
func (c *Context) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < 4 || h < 4 {
		return
	}
	field := core.NewRect(0, 1, w, h-1)
	dst.DrawBox(field, core.ColorGray)

	inner := field.Inner()
	size := core.V(c.opts.Width, c.opts.Height)
	ecs.Iterate(c.idx, func(e ecs.Handle, s *Sprite) {
		if p := ecs.Get[PlayerTag](c.idx, e.ID()); p != nil && p.Dead {
			return
		}
		t := ecs.Get[Transform](c.idx, e.ID())
		if t == nil {
			return
		}
		if x, y, ok := inner.Project(t.Centre, size); ok {
			dst.SetColor(x, y, s.Glyph, s.Color)
		}
	}, true)

	st := c.Status()
	dst.DrawText(0, 0, fmt.Sprintf(" %s  SCORE %d  LIVES %d  TICK %d", c.conditions.Mode, st.Score, st.Lives, st.Tick))
	if st.GameOver {
		dst.DrawTextCentered(h/2, " GAME OVER ")
	}
}
