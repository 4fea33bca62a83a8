package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/audio3d/engine/config"
	"github.com/1siamBot/audio3d/engine/core"
)

// Marker is an entity drawn as a dot with a heading line
type Marker struct {
	Pose   core.Pose
	Color  color.RGBA
	Label  string
	Active bool // draws a ring, e.g. while a loop plays
}

// TopDown draws the scene seen from above plus a text overlay
type TopDown struct {
	Camera *Camera
	face   text.Face
}

func NewTopDown(c *Camera) *TopDown {
	return &TopDown{
		Camera: c,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw renders the path circle, the markers and the listener
func (r *TopDown) Draw(screen *ebiten.Image, pathRadius float64, markers []Marker, listener core.Pose) {
	screen.Fill(config.BackgroundColor)

	ox, oy := r.Camera.WorldToScreen(0, 0)
	vector.StrokeLine(screen, ox-8, oy, ox+8, oy, 1, config.GridColor, false)
	vector.StrokeLine(screen, ox, oy-8, ox, oy+8, 1, config.GridColor, false)
	vector.StrokeCircle(screen, ox, oy, r.Camera.WorldLength(pathRadius), 1, config.PathColor, true)

	for _, m := range markers {
		r.drawMarker(screen, m)
	}
	r.drawMarker(screen, Marker{Pose: listener, Color: config.ListenerColor, Label: "you"})
}

func (r *TopDown) drawMarker(screen *ebiten.Image, m Marker) {
	p := m.Pose.Position
	sx, sy := r.Camera.WorldToScreen(p.X, p.Z)
	if m.Active {
		vector.StrokeCircle(screen, sx, sy, 14, 2, m.Color, true)
	}
	vector.DrawFilledCircle(screen, sx, sy, 7, m.Color, true)

	head := p.Add(m.Pose.Forward.Scale(600))
	hx, hy := r.Camera.WorldToScreen(head.X, head.Z)
	vector.StrokeLine(screen, sx, sy, hx, hy, 2, m.Color, true)

	if m.Label != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(sx)+10, float64(sy)-18)
		op.ColorScale.ScaleWithColor(m.Color)
		text.Draw(screen, m.Label, r.face, op)
	}
}

// DrawHUD prints lines in the top-left corner
func (r *TopDown) DrawHUD(screen *ebiten.Image, lines []string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(config.TextColor)
	op.LineSpacing = 16
	for _, l := range lines {
		text.Draw(screen, l, r.face, op)
		op.GeoM.Translate(0, op.LineSpacing)
	}
}
