// Package camera maps arena world units to screen pixels for the viewer.
package camera

// Camera controls the viewport onto the arena.
// World coordinates are in world units, screen coordinates in pixels.
type Camera struct {
	// Focus is the world point drawn at the viewport centre.
	X, Y float64

	// Zoom multiplies PixelsPerUnit (1.0 = configured scale).
	Zoom float32

	// PixelsPerUnit is the base scale at zoom 1.
	PixelsPerUnit float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	homeX, homeY float64
}

// New creates a camera focused on (focusX, focusY) at zoom 1.
func New(viewportW, viewportH, pixelsPerUnit float32, focusX, focusY float64) *Camera {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return &Camera{
		X:             focusX,
		Y:             focusY,
		Zoom:          1.0,
		PixelsPerUnit: pixelsPerUnit,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
		MinZoom:       0.25,
		MaxZoom:       4.0,
		homeX:         focusX,
		homeY:         focusY,
	}
}

// scale returns pixels per world unit at the current zoom.
func (c *Camera) scale() float32 {
	return c.PixelsPerUnit * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float32) {
	s := c.scale()
	sx = c.ViewportW/2 + float32(wx-c.X)*s
	sy = c.ViewportH/2 + float32(wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float64) {
	s := c.scale()
	wx = c.X + float64((sx-c.ViewportW/2)/s)
	wy = c.Y + float64((sy-c.ViewportH/2)/s)
	return wx, wy
}

// Length converts a world distance to pixels.
func (c *Camera) Length(units float64) float32 {
	return float32(units) * c.scale()
}

// IsVisible returns true if a circle at (wx, wy) with the given world radius
// could be on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.scale()
	c.X += float64(dx / s)
	c.Y += float64(dy / s)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Focus moves the camera to a world point and makes it the reset target.
func (c *Camera) Focus(wx, wy float64) {
	c.X, c.Y = wx, wy
	c.homeX, c.homeY = wx, wy
}

// Reset returns the camera to its focus point at zoom 1.
func (c *Camera) Reset() {
	c.X = c.homeX
	c.Y = c.homeY
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	s := c.scale()
	halfW := float64(c.ViewportW / (2 * s))
	halfH := float64(c.ViewportH / (2 * s))
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
