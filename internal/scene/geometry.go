package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is a shape descriptor. Descriptors are plain values so a renderer
// can cache the uploaded buffers by Key and share them between meshes.
type Geometry interface {
	Key() string
	Build() *MeshData
}

// MeshData is an indexed triangle list. Positions and Normals hold xyz triples.
type MeshData struct {
	Positions []float32
	Normals   []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (d *MeshData) VertexCount() int {
	return len(d.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (d *MeshData) TriangleCount() int {
	return len(d.Indices) / 3
}

func (d *MeshData) vertex(p, n mgl32.Vec3) uint16 {
	i := uint16(len(d.Positions) / 3)
	d.Positions = append(d.Positions, p[0], p[1], p[2])
	d.Normals = append(d.Normals, n[0], n[1], n[2])
	return i
}

func (d *MeshData) tri(a, b, c uint16) {
	d.Indices = append(d.Indices, a, b, c)
}

// Sphere is a UV sphere centered at the origin.
type Sphere struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
}

func (s Sphere) Key() string {
	return fmt.Sprintf("sphere(%g,%d,%d)", s.Radius, s.WidthSegments, s.HeightSegments)
}

func (s Sphere) Build() *MeshData {
	w := max(s.WidthSegments, 3)
	h := max(s.HeightSegments, 2)
	d := &MeshData{}
	grid := make([][]uint16, h+1)
	for iy := 0; iy <= h; iy++ {
		v := float32(iy) / float32(h)
		grid[iy] = make([]uint16, w+1)
		for ix := 0; ix <= w; ix++ {
			u := float32(ix) / float32(w)
			n := mgl32.Vec3{
				-math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
				math32.Cos(v * math32.Pi),
				math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
			}
			grid[iy][ix] = d.vertex(n.Mul(s.Radius), n)
		}
	}
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			a, b := grid[iy][ix+1], grid[iy][ix]
			c, e := grid[iy+1][ix], grid[iy+1][ix+1]
			// The pole rows collapse to a point, so only one triangle per quad there.
			if iy != 0 {
				d.tri(a, b, e)
			}
			if iy != h-1 {
				d.tri(b, c, e)
			}
		}
	}
	return d
}

// Cylinder is a (possibly tapered) cylinder along Y, centered at the origin.
type Cylinder struct {
	RadiusTop      float32
	RadiusBottom   float32
	Height         float32
	RadialSegments int
	HeightSegments int
	OpenEnded      bool
}

func (c Cylinder) Key() string {
	return fmt.Sprintf("cylinder(%g,%g,%g,%d,%d,%t)",
		c.RadiusTop, c.RadiusBottom, c.Height, c.RadialSegments, c.HeightSegments, c.OpenEnded)
}

func (c Cylinder) Build() *MeshData {
	rs := max(c.RadialSegments, 3)
	hs := max(c.HeightSegments, 1)
	half := c.Height / 2
	slope := float32(0)
	if c.Height != 0 {
		slope = (c.RadiusBottom - c.RadiusTop) / c.Height
	}
	d := &MeshData{}

	rows := make([][]uint16, hs+1)
	for y := 0; y <= hs; y++ {
		v := float32(y) / float32(hs)
		radius := v*(c.RadiusBottom-c.RadiusTop) + c.RadiusTop
		rows[y] = make([]uint16, rs+1)
		for x := 0; x <= rs; x++ {
			theta := float32(x) / float32(rs) * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			p := mgl32.Vec3{radius * sin, -v*c.Height + half, radius * cos}
			n := mgl32.Vec3{sin, slope, cos}.Normalize()
			rows[y][x] = d.vertex(p, n)
		}
	}
	for x := 0; x < rs; x++ {
		for y := 0; y < hs; y++ {
			a, b := rows[y][x], rows[y+1][x]
			cc, e := rows[y+1][x+1], rows[y][x+1]
			d.tri(a, b, e)
			d.tri(b, cc, e)
		}
	}

	if !c.OpenEnded {
		if c.RadiusTop > 0 {
			c.cap(d, rs, true)
		}
		if c.RadiusBottom > 0 {
			c.cap(d, rs, false)
		}
	}
	return d
}

func (c Cylinder) cap(d *MeshData, rs int, top bool) {
	radius, sign := c.RadiusBottom, float32(-1)
	if top {
		radius, sign = c.RadiusTop, 1
	}
	y := c.Height / 2 * sign
	n := mgl32.Vec3{0, sign, 0}
	centers := make([]uint16, rs)
	for i := range centers {
		centers[i] = d.vertex(mgl32.Vec3{0, y, 0}, n)
	}
	ring := make([]uint16, rs+1)
	for x := 0; x <= rs; x++ {
		theta := float32(x) / float32(rs) * 2 * math32.Pi
		ring[x] = d.vertex(mgl32.Vec3{radius * math32.Sin(theta), y, radius * math32.Cos(theta)}, n)
	}
	for x := 0; x < rs; x++ {
		if top {
			d.tri(ring[x], ring[x+1], centers[x])
		} else {
			d.tri(ring[x+1], ring[x], centers[x])
		}
	}
}

// Torus is a ring in the XY plane centered at the origin. Radius is the
// distance from the center to the middle of the tube.
type Torus struct {
	Radius          float32
	Tube            float32
	RadialSegments  int
	TubularSegments int
}

func (t Torus) Key() string {
	return fmt.Sprintf("torus(%g,%g,%d,%d)", t.Radius, t.Tube, t.RadialSegments, t.TubularSegments)
}

func (t Torus) Build() *MeshData {
	radial := max(t.RadialSegments, 3)
	tubular := max(t.TubularSegments, 3)
	d := &MeshData{}
	for j := 0; j <= radial; j++ {
		v := float32(j) / float32(radial) * 2 * math32.Pi
		for i := 0; i <= tubular; i++ {
			u := float32(i) / float32(tubular) * 2 * math32.Pi
			p := mgl32.Vec3{
				(t.Radius + t.Tube*math32.Cos(v)) * math32.Cos(u),
				(t.Radius + t.Tube*math32.Cos(v)) * math32.Sin(u),
				t.Tube * math32.Sin(v),
			}
			center := mgl32.Vec3{t.Radius * math32.Cos(u), t.Radius * math32.Sin(u), 0}
			d.vertex(p, p.Sub(center).Normalize())
		}
	}
	stride := uint16(tubular + 1)
	for j := uint16(1); j <= uint16(radial); j++ {
		for i := uint16(1); i <= uint16(tubular); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			e := stride*j + i
			d.tri(a, b, e)
			d.tri(b, c, e)
		}
	}
	return d
}

// Box is an axis-aligned box centered at the origin, one quad per face.
type Box struct {
	Width, Height, Depth float32
}

func (b Box) Key() string {
	return fmt.Sprintf("box(%g,%g,%g)", b.Width, b.Height, b.Depth)
}

func (b Box) Build() *MeshData {
	hx, hy, hz := b.Width/2, b.Height/2, b.Depth/2
	d := &MeshData{}
	// Each face: normal, then corners counter-clockwise seen from outside.
	faces := []struct {
		n       mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}
	for _, f := range faces {
		var idx [4]uint16
		for i, p := range f.corners {
			idx[i] = d.vertex(p, f.n)
		}
		d.tri(idx[0], idx[1], idx[2])
		d.tri(idx[0], idx[2], idx[3])
	}
	return d
}
