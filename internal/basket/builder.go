package basket

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"basket3d/internal/scene"
)

// Camera and renderer constants.
const (
	CameraFOV    = 75
	CameraAspect = 1.2
	CameraNear   = 0.1
	CameraFar    = 1000

	// RendererWidth and RendererHeight are the surface size requested at
	// creation. The viewport corrects it to the container size right away.
	RendererWidth  = 480
	RendererHeight = 400
)

// CameraPosition is where the camera sits; it always looks at the origin.
var CameraPosition = mgl32.Vec3{0, 4, 8}

// Item scale bounds, inclusive.
const (
	ScaleMin = 0.9
	ScaleMax = 1.2
)

// Basket geometry.
const (
	basketBodyColor  scene.Color = 0x8b4513
	basketWeaveColor scene.Color = 0x654321

	ringCount    = 5
	ringBaseY    = -1.3
	ringSpacing  = 0.6
	stripCount   = 12
	stripRadius  = 1.85
	handleHeight = 2.2
	rimHeight    = 1.4
)

var basketCenters = [3]mgl32.Vec3{
	Fruit:     {-6, 0, -2},
	Vegetable: {0, 0, 3},
	Fish:      {6, 0, -2},
}

// BasketCenter returns the fixed world position of a basket.
func BasketCenter(k Kind) mgl32.Vec3 {
	return basketCenters[k]
}

// population describes one batch of items dropped into a basket.
type population struct {
	catalog   []Entry
	count     int
	maxRadius float32
	yMin      float32
	ySpan     float32
	material  scene.Material
}

func itemMaterial(opacity, roughness, metalness float32) scene.Material {
	return scene.Material{Opacity: opacity, Transparent: true, Roughness: roughness, Metalness: metalness}
}

// Leaves and ice are appended after the main produce so their phase indices
// continue from it.
var populations = [3][]population{
	Fruit: {
		{FruitCatalog, 15, 1.5, -0.8, 2.0, itemMaterial(0.95, 0.3, 0.1)},
	},
	Vegetable: {
		{VegetableCatalog, 12, 1.5, -0.8, 2.0, itemMaterial(0.95, 0.4, 0.1)},
		{LeafCatalog, 6, 1.2, -0.5, 1.0, itemMaterial(0.8, 0, 0)},
	},
	Fish: {
		{FishCatalog, 10, 1.5, -0.8, 2.0, itemMaterial(0.9, 0.2, 0.3)},
		{IceCatalog, 4, 1.0, -0.3, 0.8, itemMaterial(0.6, 0, 0)},
	},
}

// Build creates the camera, lights, the three baskets and all their items.
// All constants are fixed; rng only decides item types and placement.
func Build(rng Rand) *World {
	w := &World{Scene: scene.New()}

	w.Camera = scene.NewPerspectiveCamera(CameraFOV, CameraAspect, CameraNear, CameraFar)
	w.Camera.Position = CameraPosition
	w.Camera.LookAt(mgl32.Vec3{0, 0, 0})

	for _, l := range lights() {
		w.Scene.AddLight(l)
	}

	for k := Fruit; k <= Fish; k++ {
		b := newBasket(k, basketCenters[k], basketBodyColor, basketWeaveColor)
		w.Scene.Add(b.Group)
		w.Baskets[k] = b

		cat := &Category{Kind: k, Basket: b}
		for _, p := range populations[k] {
			populate(rng, w.Scene, cat, p)
		}
		w.Categories[k] = cat
	}
	return w
}

func lights() []scene.Light {
	key := scene.NewDirectionalLight("key", 0xffffff, 1.8, mgl32.Vec3{15, 20, 10})
	key.Shadow = &scene.Shadow{
		MapSize: 2048,
		Left:    -15, Right: 15, Top: 15, Bottom: -15,
		Near: 0.5, Far: 50,
	}
	return []scene.Light{
		scene.NewAmbientLight("ambient", 0xffffff, 0.7),
		key,
		scene.NewDirectionalLight("fill", 0xfff8dc, 0.6, mgl32.Vec3{-10, 8, -8}),
		scene.NewDirectionalLight("top", 0xffffff, 0.8, mgl32.Vec3{0, 15, 0}),
	}
}

// newBasket assembles the open shell, weave rings and strips, handle and rim
// under one group placed at pos.
func newBasket(k Kind, pos mgl32.Vec3, body, weave scene.Color) *Basket {
	b := &Basket{Kind: k, Group: scene.NewGroup(k.String() + "-basket")}
	b.Group.Position = pos

	b.Body = scene.NewMesh("body", scene.Cylinder{
		RadiusTop: 1.8, RadiusBottom: 2.0, Height: 3.0,
		RadialSegments: 16, HeightSegments: 4, OpenEnded: true,
	}, scene.Material{Color: body, Opacity: 0.7, Transparent: true, Roughness: 0.8, Metalness: 0.1})
	b.Group.Add(b.Body)

	weaveMat := scene.Material{Color: weave, Opacity: 1, Roughness: 0.9}
	flat := func(n *scene.Node, y float32) *scene.Node {
		n.Position = mgl32.Vec3{0, y, 0}
		n.Rotation = mgl32.Vec3{math32.Pi / 2, 0, 0}
		return n
	}

	ring := scene.Torus{Radius: 1.85, Tube: 0.1, RadialSegments: 8, TubularSegments: 16}
	for i := 0; i < ringCount; i++ {
		n := flat(scene.NewMesh(fmt.Sprintf("ring-%d", i), ring, weaveMat), ringBaseY+float32(i)*ringSpacing)
		b.Rings = append(b.Rings, n)
		b.Group.Add(n)
	}

	strip := scene.Cylinder{RadiusTop: 0.05, RadiusBottom: 0.05, Height: 3.0, RadialSegments: 6, HeightSegments: 1}
	for i := 0; i < stripCount; i++ {
		angle := float32(i) / stripCount * 2 * math32.Pi
		n := scene.NewMesh(fmt.Sprintf("strip-%d", i), strip, weaveMat)
		n.Position = mgl32.Vec3{math32.Cos(angle) * stripRadius, 0, math32.Sin(angle) * stripRadius}
		b.Strips = append(b.Strips, n)
		b.Group.Add(n)
	}

	b.Handle = flat(scene.NewMesh("handle", scene.Torus{Radius: 0.8, Tube: 0.1, RadialSegments: 8, TubularSegments: 16}, weaveMat), handleHeight)
	b.Rim = flat(scene.NewMesh("rim", scene.Torus{Radius: 2.05, Tube: 0.08, RadialSegments: 8, TubularSegments: 16}, weaveMat), rimHeight)
	b.Group.Add(b.Handle, b.Rim)
	return b
}

// populate scatters p.count items around the category's basket. Items are
// added to the scene root, not the basket group, so they do not follow its
// spin. Overlap is allowed.
func populate(rng Rand, s *scene.Scene, cat *Category, p population) {
	center := cat.Basket.Group.Position
	for n := 0; n < p.count; n++ {
		e := &p.catalog[rng.Intn(len(p.catalog))]
		angle := float32(rng.Float64()) * 2 * math32.Pi
		radius := float32(rng.Float64()) * p.maxRadius
		y := p.yMin + float32(rng.Float64())*p.ySpan

		mat := p.material
		mat.Color = e.Color
		idx := len(cat.Items)
		node := scene.NewMesh(fmt.Sprintf("%s/%s-%d", cat.Kind, e.Name, idx), e.Geometry, mat)
		node.Position = mgl32.Vec3{
			center.X() + math32.Cos(angle)*radius,
			center.Y() + y,
			center.Z() + math32.Sin(angle)*radius,
		}
		node.Rotation = mgl32.Vec3{
			float32(rng.Float64()) * math32.Pi,
			float32(rng.Float64()) * math32.Pi,
			float32(rng.Float64()) * math32.Pi,
		}
		node.SetScale(ScaleMin + float32(rng.Float64())*(ScaleMax-ScaleMin))

		s.Add(node)
		cat.Items = append(cat.Items, &Item{
			Entry:   e,
			Node:    node,
			Index:   idx,
			Home:    center,
			Radius:  p.maxRadius,
			Initial: node.Transform,
		})
	}
}
