package scene

import "github.com/go-gl/mathgl/mgl32"

// Scene is the root of everything a renderer draws for one frame. It is owned
// by a single viewport; nothing in it is shared between scenes.
type Scene struct {
	Root   *Node
	Lights []Light
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{Root: NewGroup("scene")}
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

// AddLight registers a light.
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// Meshes returns every mesh node in depth-first order.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	s.Root.Walk(func(n *Node, _ mgl32.Mat4) {
		if n.Mesh != nil {
			out = append(out, n)
		}
	})
	return out
}

// ShadowCaster returns the first light with a shadow, if any.
func (s *Scene) ShadowCaster() (Light, bool) {
	for _, l := range s.Lights {
		if l.Shadow != nil && l.Kind == LightDirectional {
			return l, true
		}
	}
	return Light{}, false
}

// Dispose drops the whole graph and all lights. The scene is empty afterwards.
func (s *Scene) Dispose() {
	if s.Root != nil {
		s.Root.release()
	}
	s.Lights = nil
}
