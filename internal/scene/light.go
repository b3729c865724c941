package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightKind selects the lighting model.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightDirectional
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// Shadow describes the orthographic depth frustum a shadow-casting light renders.
type Shadow struct {
	MapSize                  int
	Left, Right, Top, Bottom float32
	Near, Far                float32
}

// Projection returns the light's orthographic projection.
func (s Shadow) Projection() mgl32.Mat4 {
	return mgl32.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
}

// Light is an ambient or directional light. Directional lights shine from
// Position towards Target. Shadow is nil for lights that do not cast shadows.
type Light struct {
	Name      string
	Kind      LightKind
	Color     Color
	Intensity float32
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Shadow    *Shadow
}

// NewAmbientLight returns an ambient light.
func NewAmbientLight(name string, color Color, intensity float32) Light {
	return Light{Name: name, Kind: LightAmbient, Color: color, Intensity: intensity}
}

// NewDirectionalLight returns a directional light aimed at the origin.
func NewDirectionalLight(name string, color Color, intensity float32, position mgl32.Vec3) Light {
	return Light{Name: name, Kind: LightDirectional, Color: color, Intensity: intensity, Position: position}
}

// Direction returns the unit vector pointing from the target towards the light.
func (l Light) Direction() mgl32.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// ShadowMatrix returns projection * view from the light's point of view.
// The second return value is false for lights without a Shadow.
func (l Light) ShadowMatrix() (mgl32.Mat4, bool) {
	if l.Shadow == nil || l.Kind != LightDirectional {
		return mgl32.Ident4(), false
	}
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(l.Direction().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(l.Position, l.Target, up)
	return l.Shadow.Projection().Mul4(view), true
}
