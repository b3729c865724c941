// Package basket builds and animates the three-basket produce scene.
//
// Build assembles the camera, lights, baskets and randomly placed items into a
// scene.Scene. A Driver then advances the per-frame animation: every basket
// spins slowly and every item turns, bobs and sways with a phase derived from
// its index. Nothing here talks to a GPU; renderers consume the scene graph.
package basket

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"basket3d/internal/scene"
)

// Rand is the randomness Build draws placement from. *rand.Rand satisfies it,
// so tests can pass a seeded source and get the same layout every time.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a Rand for seed and the seed actually used. A zero seed is
// replaced with a time-based one.
func NewRand(seed int64) (Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Kind identifies one of the three baskets.
type Kind int

const (
	Fruit Kind = iota
	Vegetable
	Fish
)

func (k Kind) String() string {
	switch k {
	case Fruit:
		return "fruit"
	case Vegetable:
		return "vegetable"
	case Fish:
		return "fish"
	default:
		return "unknown"
	}
}

// Basket is a group holding the woven container meshes. Only Group's rotation
// changes after construction.
type Basket struct {
	Kind   Kind
	Group  *scene.Node
	Body   *scene.Node
	Rings  []*scene.Node
	Strips []*scene.Node
	Handle *scene.Node
	Rim    *scene.Node
}

// Item is one decorative object. Entry and Index never change; Node's
// position and rotation are animated, its scale is set once at creation.
type Item struct {
	Entry *Entry
	Node  *scene.Node
	Index int
	Home  mgl32.Vec3
	// Radius bounds the item's horizontal placement distance from Home.
	Radius  float32
	Initial scene.Transform
}

// Category is the ordered item list belonging to one basket. The position of
// an item in Items is its animation phase index.
type Category struct {
	Kind   Kind
	Basket *Basket
	Items  []*Item
}

// World is everything Build produces: the scene plus handles the driver needs.
type World struct {
	Scene      *scene.Scene
	Camera     *scene.Camera
	Baskets    [3]*Basket
	Categories [3]*Category
}

// ItemCount returns the number of items across all categories.
func (w *World) ItemCount() int {
	n := 0
	for _, c := range w.Categories {
		if c != nil {
			n += len(c.Items)
		}
	}
	return n
}

// Dispose releases the scene graph. The world must not be used afterwards.
func (w *World) Dispose() {
	if w.Scene != nil {
		w.Scene.Dispose()
	}
	w.Scene = nil
	w.Camera = nil
	w.Baskets = [3]*Basket{}
	w.Categories = [3]*Category{}
}
