package scene

// Material is a Lambert-style surface. Roughness and Metalness are carried for
// renderers that support them; the raylib renderer ignores both.
type Material struct {
	Color       Color
	Opacity     float32 // 1 is opaque
	Transparent bool
	Roughness   float32
	Metalness   float32
}

// IsTranslucent reports whether the material needs blending and sorted drawing.
func (m Material) IsTranslucent() bool {
	return m.Transparent && m.Opacity < 1
}
