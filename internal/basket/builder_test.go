package basket

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

func horizontal(dx, dz float32) float32 {
	return math32.Sqrt(dx*dx + dz*dz)
}

func TestBuildCreatesFixedCamera(t *testing.T) {
	w := Build(seeded(1))
	cam := w.Camera
	assert.Equal(t, float32(75), cam.FOV)
	assert.Equal(t, float32(1.2), cam.Aspect)
	assert.Equal(t, float32(0.1), cam.Near)
	assert.Equal(t, float32(1000), cam.Far)
	assert.Equal(t, mgl32.Vec3{0, 4, 8}, cam.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target)
}

func TestBuildLights(t *testing.T) {
	w := Build(seeded(1))
	require.Len(t, w.Scene.Lights, 4)

	ambient := w.Scene.Lights[0]
	assert.Equal(t, "ambient", ambient.Kind.String())
	assert.Equal(t, float32(0.7), ambient.Intensity)

	key, ok := w.Scene.ShadowCaster()
	require.True(t, ok)
	assert.Equal(t, "key", key.Name)
	assert.Equal(t, 2048, key.Shadow.MapSize)
	assert.Equal(t, mgl32.Vec3{15, 20, 10}, key.Position)

	casters := 0
	for _, l := range w.Scene.Lights {
		if l.Shadow != nil {
			casters++
		}
	}
	assert.Equal(t, 1, casters)
}

func TestBuildBaskets(t *testing.T) {
	w := Build(seeded(1))
	for k := Fruit; k <= Fish; k++ {
		b := w.Baskets[k]
		require.NotNil(t, b, k.String())
		assert.Equal(t, BasketCenter(k), b.Group.Position)
		assert.Len(t, b.Rings, 5)
		assert.Len(t, b.Strips, 12)
		assert.NotNil(t, b.Handle)
		assert.NotNil(t, b.Rim)
		assert.Len(t, b.Group.Children(), 1+5+12+2)
		for _, c := range b.Group.Children() {
			require.NotNil(t, c.Mesh)
			assert.True(t, c.Mesh.CastShadow)
			assert.True(t, c.Mesh.ReceiveShadow)
		}
		assert.True(t, b.Body.Mesh.Material.IsTranslucent())
	}

	rings := w.Baskets[Fruit].Rings
	for i := 1; i < len(rings); i++ {
		assert.InDelta(t, 0.6, rings[i].Position.Y()-rings[i-1].Position.Y(), 1e-6)
	}
	for _, s := range w.Baskets[Fruit].Strips {
		r := horizontal(s.Position.X(), s.Position.Z())
		assert.InDelta(t, 1.85, r, 1e-5)
	}
}

func TestBuildItemCounts(t *testing.T) {
	w := Build(seeded(7))
	assert.Len(t, w.Categories[Fruit].Items, 15)
	assert.Len(t, w.Categories[Vegetable].Items, 18)
	assert.Len(t, w.Categories[Fish].Items, 14)
	assert.Equal(t, 47, w.ItemCount())
	assert.Len(t, w.Scene.Meshes(), 3*20+47)

	leaves := 0
	for _, it := range w.Categories[Vegetable].Items[12:] {
		assert.Equal(t, "leaf", it.Entry.Name)
		leaves++
	}
	assert.Equal(t, 6, leaves)
	for _, it := range w.Categories[Fish].Items[10:] {
		assert.Equal(t, "ice_cube", it.Entry.Name)
	}
}

func TestItemIndexMatchesPosition(t *testing.T) {
	w := Build(seeded(3))
	for _, c := range w.Categories {
		for i, it := range c.Items {
			assert.Equal(t, i, it.Index)
			assert.Equal(t, c.Basket.Group.Position, it.Home)
		}
	}
}

func TestItemPlacementBounds(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		w := Build(seeded(seed))
		for _, c := range w.Categories {
			for _, it := range c.Items {
				p := it.Initial.Position
				dist := horizontal(p.X()-it.Home.X(), p.Z()-it.Home.Z())
				require.Positive(t, it.Radius)
				assert.LessOrEqual(t, dist, it.Radius+1e-5, "seed %d %s", seed, it.Node.Name)

				s := it.Initial.Scale
				assert.Equal(t, s.X(), s.Y())
				assert.Equal(t, s.X(), s.Z())
				assert.GreaterOrEqual(t, s.X(), float32(ScaleMin))
				assert.LessOrEqual(t, s.X(), float32(ScaleMax))

				for axis := 0; axis < 3; axis++ {
					assert.GreaterOrEqual(t, it.Initial.Rotation[axis], float32(0))
					assert.Less(t, it.Initial.Rotation[axis], float32(math32.Pi+1e-6))
				}
			}
		}
	}
}

func TestAccessoriesSitCloserThanMainItems(t *testing.T) {
	w := Build(seeded(4))
	for _, c := range w.Categories {
		radii := map[bool]float32{}
		for _, it := range c.Items {
			accessory := it.Entry.Name == "leaf" || it.Entry.Name == "ice_cube"
			if r, ok := radii[accessory]; ok {
				assert.Equal(t, r, it.Radius, it.Node.Name)
			}
			radii[accessory] = it.Radius
		}
		if acc, ok := radii[true]; ok {
			assert.Less(t, acc, radii[false], c.Kind.String())
		}
	}
}

func TestItemsComeFromTheirCatalog(t *testing.T) {
	w := Build(seeded(11))
	catalogs := map[Kind][][]Entry{
		Fruit:     {FruitCatalog},
		Vegetable: {VegetableCatalog, LeafCatalog},
		Fish:      {FishCatalog, IceCatalog},
	}
	for k, cats := range catalogs {
		for _, it := range w.Categories[k].Items {
			found := false
			for _, cat := range cats {
				for i := range cat {
					if it.Entry == &cat[i] {
						found = true
					}
				}
			}
			assert.True(t, found, "%s not in %s catalogs", it.Entry.Name, k)
			assert.Equal(t, it.Entry.Color, it.Node.Mesh.Material.Color)
			assert.Equal(t, it.Entry.Geometry.Key(), it.Node.Mesh.Geometry.Key())
		}
	}
}

func TestBuildIsDeterministicForSeed(t *testing.T) {
	a := Build(seeded(99))
	b := Build(seeded(99))
	for k := range a.Categories {
		require.Len(t, b.Categories[k].Items, len(a.Categories[k].Items))
		for i, it := range a.Categories[k].Items {
			other := b.Categories[k].Items[i]
			assert.Equal(t, it.Entry.Name, other.Entry.Name)
			assert.Equal(t, it.Initial, other.Initial)
		}
	}
}

func TestNewRandZeroSeedPicksOne(t *testing.T) {
	_, seed := NewRand(0)
	assert.NotZero(t, seed)
	_, seed = NewRand(5)
	assert.Equal(t, int64(5), seed)
}

func TestDisposeDropsGraph(t *testing.T) {
	w := Build(seeded(1))
	s := w.Scene
	basketGroup := w.Baskets[Fruit].Group
	w.Dispose()
	assert.Nil(t, w.Scene)
	assert.Nil(t, w.Camera)
	assert.Empty(t, s.Root.Children())
	assert.Empty(t, s.Lights)
	assert.Nil(t, basketGroup.Parent())
	assert.Empty(t, basketGroup.Children())
}
