package render

import (
	"math"

	"github.com/1siamBot/audio3d/engine/config"
)

// Camera is the top-down viewport onto the XZ plane
type Camera struct {
	X, Z    float64 // world position at the screen center
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels
}

// NewCamera creates a camera centered on the origin
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: config.MinZoom,
		MaxZoom: config.MaxZoom,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

func (c *Camera) unitsPerPixel() float64 {
	return config.WorldPerPixel / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	wx, wz := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom * (1 + delta))
	wx2, wz2 := c.ScreenToWorld(screenX, screenY)
	// Keep the point under the cursor stationary
	c.X += wx - wx2
	c.Z += wz - wz2
}

// WorldToScreen projects a world XZ position; -Z is up on screen
func (c *Camera) WorldToScreen(wx, wz float64) (float32, float32) {
	upp := c.unitsPerPixel()
	sx := float64(c.ScreenW)/2 + (wx-c.X)/upp
	sy := float64(c.ScreenH)/2 + (wz-c.Z)/upp
	return float32(sx), float32(sy)
}

// ScreenToWorld converts screen coords to world XZ
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	upp := c.unitsPerPixel()
	wx := c.X + (float64(sx)-float64(c.ScreenW)/2)*upp
	wz := c.Z + (float64(sy)-float64(c.ScreenH)/2)*upp
	return wx, wz
}

// WorldLength converts a world distance to pixels
func (c *Camera) WorldLength(d float64) float32 {
	return float32(d / c.unitsPerPixel())
}
