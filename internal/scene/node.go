package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is position, Euler rotation (radians, XYZ order) and per-axis scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Identity returns a transform at the origin with unit scale.
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// SetScale sets the same factor on all three axes.
func (t *Transform) SetScale(s float32) {
	t.Scale = mgl32.Vec3{s, s, s}
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Mesh is the drawable payload of a node: a shape plus its surface.
type Mesh struct {
	Geometry      Geometry
	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// Node is an element of the scene graph. A node without a Mesh is a group;
// its children inherit its transform.
type Node struct {
	Name string
	Transform
	Mesh *Mesh

	parent   *Node
	children []*Node
}

// NewGroup returns an empty group node.
func NewGroup(name string) *Node {
	return &Node{Name: name, Transform: Identity()}
}

// NewMesh returns a mesh node that casts and receives shadows.
func NewMesh(name string, geom Geometry, mat Material) *Node {
	return &Node{
		Name:      name,
		Transform: Identity(),
		Mesh:      &Mesh{Geometry: geom, Material: mat, CastShadow: true, ReceiveShadow: true},
	}
}

// Add attaches children to n, detaching each from its previous parent first.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.Detach()
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Detach removes n from its parent. No-op for a root node.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// WorldMatrix returns the node transform composed with all of its ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Matrix().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth first, passing each node's world matrix.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4)) {
	n.walk(mgl32.Ident4(), fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	world := parent.Mul4(n.Matrix())
	fn(n, world)
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// release drops the subtree so nothing in it stays reachable through n.
func (n *Node) release() {
	for _, c := range n.children {
		c.parent = nil
		c.release()
	}
	n.children = nil
	n.Mesh = nil
}
