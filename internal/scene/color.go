package scene

// Color is a 0xRRGGBB value, the form every color constant in the scene uses.
type Color uint32

// RGB returns the channels normalized to [0,1].
func (c Color) RGB() (r, g, b float32) {
	return float32(c>>16&0xff) / 255, float32(c>>8&0xff) / 255, float32(c&0xff) / 255
}

// RGBA8 returns the 8-bit channels with alpha derived from opacity (clamped to [0,1]).
func (c Color) RGBA8(opacity float32) (r, g, b, a uint8) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(opacity*255 + 0.5)
}
